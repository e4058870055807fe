package employees

import "github.com/clubdesk/clubdesk/internal/validate"

func rules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(120, "name is too long"),
		},
		"position": {validate.Required("position is required")},
		"email":    {checker.Tag("omitempty,email", "must be a valid email address")},
		"hireDate": {
			validate.Required("hire date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"status": {validate.OneOf(StatusActive, StatusInactive)},
	}
}

func scheduleRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"weekday": {
			validate.Required("weekday is required"),
			validate.OneOf(Weekdays...),
		},
		"startTime": {
			validate.Required("start time is required"),
			checker.Tag("datetime=15:04", "must be a time in HH:MM form"),
		},
		"endTime": {
			validate.Required("end time is required"),
			checker.Tag("datetime=15:04", "must be a time in HH:MM form"),
			endsAfterStart,
		},
	}
}

// endsAfterStart is a cross-field rule: HH:MM strings compare correctly
// as plain strings.
func endsAfterStart(value string, all map[string]string) string {
	if start := all["startTime"]; start != "" && value != "" && value <= start {
		return "end time must be after start time"
	}
	return ""
}
