// Package validate evaluates declarative per-entity rule tables. Each
// entity declares one Rules map instead of its own validation code; the
// engine is the only place rules are interpreted.
package validate

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule checks a single submitted value, with access to all submitted
// values for cross-field rules. It returns an error message, or the empty
// string when the value is acceptable.
type Rule func(value string, all map[string]string) string

// Rules maps field names to ordered rule lists. Rules run in order; the
// first failing message wins for its field.
type Rules map[string][]Rule

// Engine evaluates rule tables. Tag rules delegate to validator/v10.
type Engine struct {
	v *validator.Validate
}

// New constructs an Engine.
func New() *Engine {
	return &Engine{v: validator.New()}
}

// Check evaluates every field's rules against the submitted values and
// returns a field -> message map. An empty map means valid.
func (e *Engine) Check(rules Rules, values map[string]string) map[string]string {
	errs := make(map[string]string)
	for field, fieldRules := range rules {
		value := values[field]
		for _, rule := range fieldRules {
			if msg := rule(value, values); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	return errs
}

// Tag adapts a validator/v10 tag expression (e.g. "required,email",
// "numeric", "min=8") into a Rule with a fixed message.
func (e *Engine) Tag(tag, message string) Rule {
	return func(value string, _ map[string]string) string {
		if err := e.v.Var(value, tag); err != nil {
			return message
		}
		return ""
	}
}

// Required fails on empty or whitespace-only values.
func Required(message string) Rule {
	return func(value string, _ map[string]string) string {
		if strings.TrimSpace(value) == "" {
			return message
		}
		return ""
	}
}

// MaxLen fails when the value exceeds n characters.
func MaxLen(n int, message string) Rule {
	return func(value string, _ map[string]string) string {
		if len([]rune(value)) > n {
			return message
		}
		return ""
	}
}

// OneOf fails unless the value is one of the allowed literals. Empty
// values pass so the rule composes with Required.
func OneOf(allowed ...string) Rule {
	return func(value string, _ map[string]string) string {
		if value == "" {
			return ""
		}
		for _, a := range allowed {
			if value == a {
				return ""
			}
		}
		return fmt.Sprintf("must be one of %s", strings.Join(allowed, ", "))
	}
}
