// Package changelog computes field level differences between two states of
// a record.
package changelog

import (
	"fmt"
	"strings"
)

// Change is one field transition.
type Change struct {
	Field string
	From  string
	To    string
}

// Tracker diffs the tracked fields of one kind of record.
type Tracker struct {
	Subject string
	Fields  []string
}

// NewTracker returns a tracker for subject watching fields in order.
func NewTracker(subject string, fields ...string) Tracker {
	return Tracker{Subject: subject, Fields: fields}
}

// Diff compares before and after field by field. Keys outside the tracked
// field list are ignored; a missing key reads as empty.
func (t Tracker) Diff(before, after map[string]any) []Change {
	var changes []Change
	for _, field := range t.Fields {
		from := Normalize(before[field])
		to := Normalize(after[field])
		if from == to {
			continue
		}
		changes = append(changes, Change{Field: field, From: from, To: to})
	}

	return changes
}

// Normalize renders v as trimmed text, with nil as the empty string.
func Normalize(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case *string:
		if val == nil {
			return ""
		}
		return strings.TrimSpace(*val)
	case *int:
		if val == nil {
			return ""
		}
		return fmt.Sprint(*val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}
