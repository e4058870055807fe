package table

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Filter keeps records whose string-coerced field values contain the term
// under unicode case folding. An empty term keeps everything. Callers that
// re-filter should reset the presenter's page afterwards; Presenter does
// this itself when records are replaced.
func Filter[T any](records []T, fields func(T) map[string]any, term string) []T {
	term = strings.TrimSpace(term)
	if term == "" || fields == nil {
		return records
	}
	// Caser carries transform state, so build one per call.
	caser := cases.Fold()
	folded := caser.String(term)
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if matches(caser, fields(rec), folded) {
			out = append(out, rec)
		}
	}
	return out
}

// FilterStatus keeps records whose status field equals the wanted value
// exactly. Substring matching is wrong for status fields: "Inactive"
// contains "active" once case is folded, so equality is the only safe
// comparison there.
func FilterStatus[T any](records []T, fields func(T) map[string]any, statusKey, status string) []T {
	if status == "" || statusKey == "" || fields == nil {
		return records
	}
	out := make([]T, 0, len(records))
	for _, rec := range records {
		if coerce(fields(rec)[statusKey]) == status {
			out = append(out, rec)
		}
	}
	return out
}

func matches(caser cases.Caser, values map[string]any, foldedTerm string) bool {
	for _, v := range values {
		if strings.Contains(caser.String(coerce(v)), foldedTerm) {
			return true
		}
	}
	return false
}

func coerce(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
