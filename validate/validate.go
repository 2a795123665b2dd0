// Package validate implements request validation for the admin API. It
// produces the canonical field -> messages map the response renderer surfaces
// on 422 responses.
package validate

import (
	"fmt"
	"net/mail"
	"sort"
	"strings"
)

// Errors is the field-validation failure signal: a map from field name to the
// list of rule violations for that field. It implements error so it can
// propagate to the boundary like any other failure.
type Errors map[string][]string

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed on fields: %s", strings.Join(fields, ", "))
}

// Add appends a violation message for a field.
func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// OrNil returns the error set as an error, or nil when no rule was violated.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// required checks a trimmed string for presence.
func required(errs Errors, field, value string) {
	if strings.TrimSpace(value) == "" {
		errs.Add(field, "The "+field+" field is required.")
	}
}

// maxLen checks a string length ceiling.
func maxLen(errs Errors, field, value string, limit int) {
	if len(value) > limit {
		errs.Add(field, fmt.Sprintf("The %s may not be greater than %d characters.", field, limit))
	}
}

// minLen checks a string length floor.
func minLen(errs Errors, field, value string, limit int) {
	if value != "" && len(value) < limit {
		errs.Add(field, fmt.Sprintf("The %s must be at least %d characters.", field, limit))
	}
}

// email checks RFC 5322 address format.
func email(errs Errors, field, value string) {
	if value == "" {
		return
	}
	if addr, err := mail.ParseAddress(value); err != nil || addr.Address != value {
		errs.Add(field, "The "+field+" must be a valid email address.")
	}
}
