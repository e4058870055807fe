package events

import "github.com/clubdesk/clubdesk/internal/validate"

func eventRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"name": {
			validate.Required("name is required"),
			validate.MaxLen(150, "name is too long"),
		},
		"startDate": {
			validate.Required("start date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"endDate": {
			checker.Tag("omitempty,datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
			endsAfterStart,
		},
		"capacity": {checker.Tag("omitempty,numeric", "capacity must be a number")},
		"status":   {validate.OneOf(StatusActive, StatusFinished, StatusCancelled)},
	}
}

func inscriptionRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"participantName": {
			validate.Required("participant name is required"),
			validate.MaxLen(120, "participant name is too long"),
		},
		"email": {checker.Tag("omitempty,email", "must be a valid email address")},
	}
}

func appointmentRules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"title": {
			validate.Required("title is required"),
			validate.MaxLen(150, "title is too long"),
		},
		"date": {
			validate.Required("date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"startTime": {
			validate.Required("start time is required"),
			checker.Tag("datetime=15:04", "must be a time in HH:MM form"),
		},
		"endTime": {checker.Tag("omitempty,datetime=15:04", "must be a time in HH:MM form")},
		"status":  {validate.OneOf(AppointmentScheduled, AppointmentCompleted, AppointmentCancelled)},
	}
}

func cancelRules() validate.Rules {
	return validate.Rules{
		"reason": {
			validate.Required("a cancellation reason is required"),
			validate.MaxLen(300, "reason is too long"),
		},
	}
}

// endsAfterStart compares ISO dates, which order correctly as strings.
func endsAfterStart(value string, all map[string]string) string {
	if start := all["startDate"]; start != "" && value != "" && value < start {
		return "end date must not be before start date"
	}
	return ""
}
