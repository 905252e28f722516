package config

import (
	"github.com/grovetools/niribar/logging"
)

// Envelope names the top-level layout of emitted documents.
const (
	// EnvelopePlain emits {"<output>": [workspace, ...]}.
	EnvelopePlain = "plain"
	// EnvelopeOutputs emits {"outputs": {"<output>": {"workspaces": [...]}}}.
	EnvelopeOutputs = "outputs"
)

// Pretty modes for document output.
const (
	PrettyAuto   = "auto"
	PrettyAlways = "always"
	PrettyNever  = "never"
)

// Config is the niribar configuration file.
type Config struct {
	Socket  SocketConfig   `yaml:"socket,omitempty" toml:"socket,omitempty" json:"socket,omitempty" jsonschema:"description=Connection to the niri IPC socket"`
	Output  OutputConfig   `yaml:"output,omitempty" toml:"output,omitempty" json:"output,omitempty" jsonschema:"description=How projected documents are written"`
	Logging logging.Config `yaml:"logging,omitempty" toml:"logging,omitempty" json:"logging,omitempty" jsonschema:"description=Diagnostic logging on stderr"`
}

// SocketConfig locates the compositor.
type SocketConfig struct {
	// Path overrides the socket path; NIRI_SOCKET is used when empty.
	Path string `yaml:"path,omitempty" toml:"path,omitempty" json:"path,omitempty" env:"NIRI_SOCKET" jsonschema:"description=Path to the niri IPC socket (default: $NIRI_SOCKET)"`
	// Wait blocks until the socket exists instead of failing.
	Wait bool `yaml:"wait,omitempty" toml:"wait,omitempty" json:"wait,omitempty" env:"NIRIBAR_WAIT" jsonschema:"description=Wait for the socket to appear before connecting"`
}

// OutputConfig controls document emission.
type OutputConfig struct {
	Envelope string `yaml:"envelope,omitempty" toml:"envelope,omitempty" json:"envelope,omitempty" env:"NIRIBAR_ENVELOPE" jsonschema:"enum=plain,enum=outputs,description=Top-level document layout"`
	Pretty   string `yaml:"pretty,omitempty" toml:"pretty,omitempty" json:"pretty,omitempty" env:"NIRIBAR_PRETTY" jsonschema:"enum=auto,enum=always,enum=never,description=Indent documents (auto: only on a terminal)"`
	// Dedupe suppresses a document identical to the previous one.
	Dedupe bool `yaml:"dedupe,omitempty" toml:"dedupe,omitempty" json:"dedupe,omitempty" env:"NIRIBAR_DEDUPE" jsonschema:"description=Skip documents identical to the previous one"`
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Output.Envelope == "" {
		c.Output.Envelope = EnvelopePlain
	}
	if c.Output.Pretty == "" {
		c.Output.Pretty = PrettyAuto
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
