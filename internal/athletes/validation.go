package athletes

import "github.com/clubdesk/clubdesk/internal/validate"

func rules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"firstName": {
			validate.Required("first name is required"),
			validate.MaxLen(80, "first name is too long"),
		},
		"lastName": {
			validate.Required("last name is required"),
			validate.MaxLen(80, "last name is too long"),
		},
		"birthDate": {
			validate.Required("birth date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"categoryId": {validate.Required("category is required")},
		"status":     {validate.OneOf(StatusActive, StatusInactive)},
	}
}

func attendanceRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"date": {
			validate.Required("date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"notes": {validate.MaxLen(300, "notes are too long")},
	}
}
