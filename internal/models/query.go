// filepath: internal/models/query.go
package models

// Sort orders accepted by report list views.
const (
	SortDateDesc    = "date_desc"
	SortDateAsc     = "date_asc"
	SortTeacherName = "teacher_asc"
)

// ListQuery describes the filter and sort state of a report list view.
// Zero value means "everything, newest first".
type ListQuery struct {
	// Search is matched case-insensitively as a substring of the
	// teacher name OR the subject.
	Search string `json:"search"`
	// StartDate and EndDate bound the report date, inclusive on both
	// ends. Empty means unbounded.
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	// SortBy is one of the Sort* constants. Filtering happens first,
	// then sorting.
	SortBy string `json:"sortBy"`
}

// FieldError names one invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
