// Package validation checks request bodies against declarative per-entity
// rule sets and reports failures as a field-to-message map.
package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"time"
)

// Kind is the expected type of a field value.
type Kind int

const (
	// KindString expects a JSON string.
	KindString Kind = iota
	// KindInteger expects a whole JSON number.
	KindInteger
	// KindNumeric expects any JSON number.
	KindNumeric
	// KindDate expects a string in YYYY-MM-DD or RFC 3339 form.
	KindDate
	// KindEmail expects a parseable email address string.
	KindEmail
)

// Rule describes the constraints on one request field.
type Rule struct {
	Field    string
	Kind     Kind
	Required bool
	// Sometimes marks a field that is validated only when present in the
	// request (partial-update semantics).
	Sometimes bool
	// Nullable allows an explicit JSON null.
	Nullable bool
	MinLen   int
	MaxLen   int
	OneOf    []string
}

// Errors maps field names to human-readable validation messages.
type Errors map[string]string

// Any reports whether any field failed validation.
func (e Errors) Any() bool { return len(e) > 0 }

// Check validates a raw JSON body against the rule set. A non-nil error means
// the body itself was not a JSON object; field failures are reported in Errors.
func Check(body []byte, rules []Rule) (Errors, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	errs := Errors{}
	for _, r := range rules {
		raw, present := fields[r.Field]
		if present && string(raw) == "null" {
			if r.Nullable {
				continue
			}
			present = false
		}

		if !present {
			if r.Required && !r.Sometimes {
				errs[r.Field] = fmt.Sprintf("The %s field is required.", r.Field)
			}
			continue
		}

		if msg := checkValue(raw, r); msg != "" {
			errs[r.Field] = msg
		}
	}
	return errs, nil
}

func checkValue(raw json.RawMessage, r Rule) string {
	switch r.Kind {
	case KindString:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Sprintf("The %s must be a string.", r.Field)
		}
		return checkString(s, r)
	case KindInteger:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil || n != math.Trunc(n) {
			return fmt.Sprintf("The %s must be an integer.", r.Field)
		}
	case KindNumeric:
		var n float64
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Sprintf("The %s must be a number.", r.Field)
		}
	case KindDate:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Sprintf("The %s is not a valid date.", r.Field)
		}
		if _, err := ParseDate(s); err != nil {
			return fmt.Sprintf("The %s is not a valid date.", r.Field)
		}
	case KindEmail:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return fmt.Sprintf("The %s must be a valid email address.", r.Field)
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return fmt.Sprintf("The %s must be a valid email address.", r.Field)
		}
		return checkString(s, r)
	}
	return ""
}

func checkString(s string, r Rule) string {
	if r.Required && !r.Sometimes && s == "" {
		return fmt.Sprintf("The %s field is required.", r.Field)
	}
	if r.Sometimes && s == "" {
		// A present-but-empty value fails "sometimes required" rules too.
		return fmt.Sprintf("The %s field is required.", r.Field)
	}
	if r.MinLen > 0 && len(s) < r.MinLen {
		return fmt.Sprintf("The %s must be at least %d characters.", r.Field, r.MinLen)
	}
	if r.MaxLen > 0 && len(s) > r.MaxLen {
		return fmt.Sprintf("The %s may not be greater than %d characters.", r.Field, r.MaxLen)
	}
	if len(r.OneOf) > 0 {
		for _, v := range r.OneOf {
			if s == v {
				return ""
			}
		}
		return fmt.Sprintf("The selected %s is invalid.", r.Field)
	}
	return ""
}

// ParseDate parses a date in YYYY-MM-DD or RFC 3339 form.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
