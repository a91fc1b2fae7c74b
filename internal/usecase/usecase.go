// Package usecase defines the operations the back office offers to the desktop shell.
package usecase

// Rows is an imported table: one map per data row, keyed by column header.
type Rows = []map[string]string

// Export is a rendered export file
type Export struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	// ArchiveKey is where the file was archived, empty when archiving is off
	ArchiveKey string `json:"archive_key,omitempty"`
}
