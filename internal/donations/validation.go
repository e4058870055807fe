package donations

import "github.com/clubdesk/clubdesk/internal/validate"

func rules(checker *validate.Engine) validate.Rules {
	return validate.Rules{
		"donorId": {validate.Required("donor is required")},
		"amount": {
			validate.Required("amount is required"),
			checker.Tag("numeric", "amount must be a number"),
			positiveAmount,
		},
		"method": {validate.OneOf(MethodCash, MethodTransfer, MethodCard, MethodInKind)},
		"date": {
			validate.Required("date is required"),
			checker.Tag("datetime=2006-01-02", "must be a date in YYYY-MM-DD form"),
		},
		"notes": {validate.MaxLen(300, "notes are too long")},
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

func positiveAmount(value string, _ map[string]string) string {
	if value == "0" || (len(value) > 0 && value[0] == '-') {
		return "amount must be positive"
	}
	return ""
}
