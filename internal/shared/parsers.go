package shared

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for report dates ("2025-03-14").
const DateLayout = "2006-01-02"

// ParseDate parses a report date string. Dates are stored and exchanged
// in ISO form, so anything else is rejected.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s", dateStr)
	}
	return t, nil
}

// ISODate formats t as an ISO calendar date.
func ISODate(t time.Time) string {
	return t.Format(DateLayout)
}

// SanitizeFilename replaces characters that are unsafe in exported file
// names. Spaces become underscores to match the naming scheme of the
// generated report documents.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		" ", "_",
		"/", "_",
		"\\", "_",
		":", "_",
	)
	return replacer.Replace(strings.TrimSpace(name))
}
