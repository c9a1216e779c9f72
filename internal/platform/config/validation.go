package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("htmlid", isHTMLID); err != nil {
		panic(fmt.Sprintf("config: register htmlid: %v", err))
	}
	return v
}

// isHTMLID accepts values usable as an HTML id attribute: non-empty and
// free of whitespace.
func isHTMLID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	return id != "" && strings.IndexFunc(id, unicode.IsSpace) < 0
}

// Validate checks the configuration. The service refuses to start on error.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationErrors(err)
	}
	return nil
}

func formatValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	lines := make([]string, len(fieldErrs))
	for i, e := range fieldErrs {
		lines[i] = describeFieldError(e)
	}

	return fmt.Errorf("config validation failed:\n  %s", strings.Join(lines, "\n  "))
}

var fieldMessages = map[string]string{
	"required":    "is required",
	"required_if": "is required when %s",
	"min":         "must be at least %s",
	"max":         "must be at most %s",
	"oneof":       "must be one of: %s",
	"url":         "must be a valid URL",
	"file":        "must be an existing file",
	"htmlid":      "must be a valid HTML id (no whitespace)",
}

func describeFieldError(e validator.FieldError) string {
	field := configKey(e.Namespace())

	msg, ok := fieldMessages[e.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation: %s", field, e.Tag())
	}
	if strings.Contains(msg, "%s") {
		msg = fmt.Sprintf(msg, e.Param())
	}
	return field + " " + msg
}

// configKey turns "Config.Footer.TargetID" into "footer.targetid".
func configKey(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}
	return strings.ToLower(rest)
}
