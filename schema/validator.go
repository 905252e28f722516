// Package schema validates niribar configuration against its JSON Schema.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed niribar.schema.json
var embeddedSchemaData []byte

const schemaURL = "niribar.json"

// Violation is one failed schema constraint.
type Violation struct {
	// Path is the JSON pointer of the offending value, e.g. /output/envelope.
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	lines := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		lines = append(lines, fmt.Sprintf("- %s: %s", v.Path, v.Message))
	}
	return "schema validation failed:\n" + strings.Join(lines, "\n")
}

// Validator validates configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// NewValidator returns a validator for the embedded schema. The schema is
// compiled once per process.
func NewValidator() (*Validator, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, bytes.NewReader(embeddedSchemaData)); err != nil {
			compileErr = fmt.Errorf("failed to add embedded schema resource: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("failed to compile embedded schema: %w", compileErr)
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return &Validator{schema: compiled}, nil
}

// Schema returns the embedded schema document.
func Schema() []byte {
	return embeddedSchemaData
}

// Validate checks any value that marshals to JSON. Failures are returned as
// a *ValidationError.
func (v *Validator) Validate(data interface{}) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal config to JSON for validation: %w", err)
	}
	return v.ValidateJSON(raw)
}

// ValidateJSON checks a raw JSON document.
func (v *Validator) ValidateJSON(raw []byte) error {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode JSON for validation: %w", err)
	}

	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return fmt.Errorf("schema validation failed: %w", err)
	}

	out := &ValidationError{}
	collect(verr, &out.Violations)
	sort.SliceStable(out.Violations, func(i, j int) bool {
		return out.Violations[i].Path < out.Violations[j].Path
	})
	if len(out.Violations) == 0 {
		out.Violations = append(out.Violations, Violation{Path: "/", Message: verr.Message})
	}
	return out
}

// collect flattens the leaves of the error tree.
func collect(err *jsonschema.ValidationError, out *[]Violation) {
	if len(err.Causes) == 0 {
		path := err.InstanceLocation
		if path == "" {
			path = "/"
		}
		*out = append(*out, Violation{Path: path, Message: err.Message})
		return
	}
	for _, cause := range err.Causes {
		collect(cause, out)
	}
}
