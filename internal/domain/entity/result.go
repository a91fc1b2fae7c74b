package entity

// Result is the outcome of a single write, as reported to the desktop shell.
type Result struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// Succeeded builds a successful Result for the given id.
func Succeeded(id, message string) *Result {
	return &Result{Success: true, ID: id, Message: message}
}

// RowError records why one import row was not stored.
type RowError struct {
	Row     int    `json:"row"` // 1-based data row number, header excluded
	Message string `json:"message"`
}

// ImportSummary aggregates the classification of every imported row.
type ImportSummary struct {
	Added   int        `json:"added"`
	Updated int        `json:"updated"`
	Skipped int        `json:"skipped"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

// Total is the number of rows seen.
func (s *ImportSummary) Total() int {
	return s.Added + s.Updated + s.Skipped + s.Failed
}

// Fail counts row as failed with a reason.
func (s *ImportSummary) Fail(row int, message string) {
	s.Failed++
	s.Errors = append(s.Errors, RowError{Row: row, Message: message})
}

// Skip counts row as skipped with a reason.
func (s *ImportSummary) Skip(row int, message string) {
	s.Skipped++
	if message != "" {
		s.Errors = append(s.Errors, RowError{Row: row, Message: message})
	}
}

// Page is one window of a paginated listing.
type Page[T any] struct {
	Data  []T   `json:"data"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}
