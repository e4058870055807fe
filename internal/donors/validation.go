package donors

import "github.com/clubdesk/clubdesk/internal/validate"

func rules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(120, "name is too long"),
		},
		"type":   {validate.OneOf(TypeIndividual, TypeCompany)},
		"email":  {checker.Tag("omitempty,email", "must be a valid email address")},
		"status": {validate.OneOf(StatusActive, StatusInactive)},
	}
}
