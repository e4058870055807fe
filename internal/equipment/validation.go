package equipment

import "github.com/clubdesk/clubdesk/internal/validate"

func rules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(120, "name is too long"),
		},
		"condition": {validate.OneOf(ConditionNew, ConditionGood, ConditionFair, ConditionPoor)},
		"quantity":  {checker.Tag("omitempty,numeric", "quantity must be a number")},
		"status":    {validate.OneOf(StatusActive, StatusInactive, StatusDisposed)},
		"acquiredAt": {
			checker.Tag("omitempty,datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
	}
}
