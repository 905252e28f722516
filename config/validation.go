package config

import (
	stderrors "errors"

	"github.com/grovetools/niribar/errors"
	"github.com/grovetools/niribar/schema"
)

// Validate checks the configuration against the embedded JSON Schema. The
// returned CONFIG_INVALID error carries the violations under "violations".
func (c *Config) Validate() error {
	v, err := schema.NewValidator()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to load config schema")
	}

	err = v.Validate(c)
	if err == nil {
		return nil
	}

	out := errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration does not match schema")
	var verr *schema.ValidationError
	if stderrors.As(err, &verr) {
		out = out.WithDetail("violations", verr.Violations)
	}
	return out
}
