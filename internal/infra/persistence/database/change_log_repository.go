package database

import (
	"context"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// changeLogRepository implements the repository.ChangeLogRepository interface.
type changeLogRepository struct {
	db *gorm.DB
}

// NewChangeLogRepository is the constructor for changeLogRepository.
func NewChangeLogRepository(db *gorm.DB) repository.ChangeLogRepository {
	return &changeLogRepository{db: db}
}

func (repo *changeLogRepository) Append(ctx context.Context, entries []*entity.ChangeLogEntry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([]*model.ChangeLogModel, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, fromChangeLogDomain(e))
	}

	if err := repo.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append change log")
	}

	for i, row := range rows {
		entries[i].ID = row.ID
	}

	return nil
}

func (repo *changeLogRepository) ListByEntity(ctx context.Context, namespace, entityID string) ([]*entity.ChangeLogEntry, error) {
	var rows []*model.ChangeLogModel
	if err := repo.db.WithContext(ctx).
		Where("namespace = ? AND entity_id = ?", namespace, entityID).
		Order("timestamp DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list change log")
	}

	entries := make([]*entity.ChangeLogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, toChangeLogDomain(row))
	}

	return entries, nil
}

func fromChangeLogDomain(e *entity.ChangeLogEntry) *model.ChangeLogModel {
	return &model.ChangeLogModel{
		Namespace: e.Namespace,
		EntityID:  e.EntityID,
		Subject:   e.Subject,
		SubjectID: e.SubjectID,
		Field:     e.Field,
		FromValue: e.From,
		ToValue:   e.To,
		Timestamp: e.Timestamp,
	}
}

func toChangeLogDomain(m *model.ChangeLogModel) *entity.ChangeLogEntry {
	return &entity.ChangeLogEntry{
		ID:        m.ID,
		Namespace: m.Namespace,
		EntityID:  m.EntityID,
		Subject:   m.Subject,
		SubjectID: m.SubjectID,
		Field:     m.Field,
		From:      m.FromValue,
		To:        m.ToValue,
		Timestamp: m.Timestamp,
	}
}
