package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the Config struct into a JSON Schema document.
func GenerateSchema() ([]byte, error) {
	// Property names follow the config file, not the Go fields.
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	s := r.Reflect(&Config{})
	s.Title = "niribar configuration"
	s.Description = "Configuration for niribar (config.yml or config.toml)."

	return json.MarshalIndent(s, "", "  ")
}
