// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"backoffice/internal/domain/sequence"
)

// SequenceRepository allocates identifiers. Both methods must run inside a
// transaction together with the insert that uses the identifier.
type SequenceRepository interface {
	// Next reserves and returns the next identifier of key. The suffix is one
	// more than the highest of the stored counter and the highest existing
	// identifier in the bucket, archived rows included. Suffixes are never
	// handed out twice.
	Next(ctx context.Context, key sequence.Key) (string, error)

	// Peek returns the identifier Next would return without reserving it.
	Peek(ctx context.Context, key sequence.Key) (string, error)
}
