package purchases

import (
	"strconv"

	"github.com/clubdesk/clubdesk/internal/validate"
)

func rules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"providerId": {validate.Required("provider is required")},
		"orderDate": {
			validate.Required("order date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"notes": {validate.MaxLen(300, "notes are too long")},
	}
}

func itemRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"description": {
			validate.Required("description is required"),
			validate.MaxLen(200, "description is too long"),
		},
		"quantity": {
			validate.Required("quantity is required"),
			positiveInt("quantity must be a positive number"),
		},
		"unitPrice": {
			validate.Required("unit price is required"),
			checker.Tag("numeric", "unit price must be a number"),
			nonNegative("unit price must not be negative"),
		},
	}
}

func positiveInt(message string) validate.Rule {
	return func(value string, _ map[string]string) string {
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return message
		}
		return ""
	}
}

func nonNegative(message string) validate.Rule {
	return func(value string, _ map[string]string) string {
		if len(value) > 0 && value[0] == '-' {
			return message
		}
		return ""
	}
}
