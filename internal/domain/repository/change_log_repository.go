package repository

import (
	"context"

	"backoffice/internal/domain/entity"
)

// ChangeLogRepository stores change-log entries. Entries are never updated or deleted.
type ChangeLogRepository interface {
	// Append stores entries and fills in their IDs.
	Append(ctx context.Context, entries []*entity.ChangeLogEntry) error

	// ListByEntity returns the entries of one entity, most recent first.
	ListByEntity(ctx context.Context, namespace, entityID string) ([]*entity.ChangeLogEntry, error)
}
