package categories

import "github.com/clubdesk/clubdesk/internal/validate"

func rules() validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(80, "name is too long"),
		},
		"description": {validate.MaxLen(300, "description is too long")},
		"status":      {validate.OneOf(StatusActive, StatusInactive)},
	}
}
