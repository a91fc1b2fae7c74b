package service

import "context"

// ExportArchive keeps a copy of every rendered export.
type ExportArchive interface {
	// Store saves data under key and returns the location it was written to.
	Store(ctx context.Context, key string, data []byte) (string, error)

	// Enabled reports whether exports are archived at all.
	Enabled() bool
}
