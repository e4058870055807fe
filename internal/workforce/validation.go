package workforce

import "github.com/clubdesk/clubdesk/internal/validate"

func workerRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(120, "name is too long"),
		},
		"task": {validate.Required("task is required")},
		"startDate": {
			validate.Required("start date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"endDate": {
			checker.Tag("omitempty,datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
			endsAfterStart,
		},
		"status": {validate.OneOf(StatusActive, StatusInactive)},
	}
}

func teamRules() validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(120, "name is too long"),
		},
		"purpose": {validate.MaxLen(300, "purpose is too long")},
		"status":  {validate.OneOf(StatusActive, StatusInactive)},
	}
}

// endsAfterStart compares ISO dates, which order correctly as strings.
func endsAfterStart(value string, all map[string]string) string {
	if start := all["startDate"]; start != "" && value != "" && value < start {
		return "end date must not be before start date"
	}
	return ""
}
