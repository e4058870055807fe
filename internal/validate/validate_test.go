package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckFirstFailingMessageWins(t *testing.T) {
	e := New()
	rules := Rules{
		"name":  {Required("name is required"), MaxLen(5, "name too long")},
		"email": {Required("email is required"), e.Tag("email", "invalid email")},
	}

	errs := e.Check(rules, map[string]string{"name": "", "email": "not-an-email"})
	require.Equal(t, "name is required", errs["name"])
	require.Equal(t, "invalid email", errs["email"])

	errs = e.Check(rules, map[string]string{"name": "too long name", "email": "a@b.cd"})
	require.Equal(t, map[string]string{"name": "name too long"}, errs)

	errs = e.Check(rules, map[string]string{"name": "ok", "email": "a@b.cd"})
	require.Empty(t, errs)
}

func TestCrossFieldRule(t *testing.T) {
	e := New()
	rules := Rules{
		"endDate": {func(value string, all map[string]string) string {
			if value != "" && all["startDate"] != "" && value < all["startDate"] {
				return "end date before start date"
			}
			return ""
		}},
	}

	errs := e.Check(rules, map[string]string{"startDate": "2026-09-01", "endDate": "2026-08-01"})
	require.Equal(t, "end date before start date", errs["endDate"])

	errs = e.Check(rules, map[string]string{"startDate": "2026-09-01", "endDate": "2026-09-02"})
	require.Empty(t, errs)
}

func TestOneOfComposesWithRequired(t *testing.T) {
	e := New()
	rules := Rules{"status": {OneOf("Active", "Inactive")}}

	require.Empty(t, e.Check(rules, map[string]string{"status": ""}))
	require.Empty(t, e.Check(rules, map[string]string{"status": "Active"}))
	require.NotEmpty(t, e.Check(rules, map[string]string{"status": "Broken"}))
}
