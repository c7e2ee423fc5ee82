package config

import (
	"fmt"
	"strings"
)

// ValidationError reports one invalid configuration field.
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field %q: %s", ve.Field, ve.Message)
}

// ValidationErrors collects every problem found in one pass so a bad config
// file is reported completely instead of one field at a time.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Error()
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

func (ve *ValidationErrors) add(field, format string, args ...any) {
	*ve = append(*ve, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	var errs ValidationErrors
	if c.Timeout < 0 {
		errs.add("timeout", "must not be negative, got %d", c.Timeout)
	}
	for _, name := range c.ControllerNames() {
		if strings.TrimSpace(name) == "" {
			errs.add("controllers", "controller names must not be blank")
			continue
		}
		if strings.TrimSpace(c.Controllers[name].Endpoint) == "" {
			errs.add("controllers."+name, "endpoint is required")
		}
	}
	if c.DefaultController != "" {
		if _, ok := c.Controllers[c.DefaultController]; !ok {
			errs.add("default-controller", "%q is not defined under controllers", c.DefaultController)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
