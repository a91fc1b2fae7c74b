package database

import (
	"context"
	"strings"

	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sequenceTarget names the table and key column a scope allocates ids for.
type sequenceTarget struct {
	table  string
	column string
}

var sequenceTargets = map[string]sequenceTarget{
	"customers":      {table: model.CustomerModel{}.TableName(), column: "id"},
	"billers":        {table: model.BillerModel{}.TableName(), column: "id"},
	"suppliers":      {table: model.SupplierModel{}.TableName(), column: "id"},
	"rewards_ledger": {table: model.LedgerEntryModel{}.TableName(), column: "id"},
	"reward_rules":   {table: model.RewardRuleModel{}.TableName(), column: "id"},
	"items":          {table: model.ItemModel{}.TableName(), column: "id"},
	"vouchers":       {table: model.VoucherModel{}.TableName(), column: "id"},
}

// sequenceRepository implements repository.SequenceRepository with a counter
// table backed by a scan of the entity table.
type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository is the constructor for sequenceRepository.
func NewSequenceRepository(db *gorm.DB) repository.SequenceRepository {
	return &sequenceRepository{db: db}
}

func (repo *sequenceRepository) Next(ctx context.Context, key sequence.Key) (string, error) {
	next, err := repo.nextValue(ctx, key, true)
	if err != nil {
		return "", err
	}

	id, err := key.Format(next)
	if err != nil {
		return "", err
	}

	counter := model.SequenceModel{Scope: key.Scope, Prefix: key.Prefix, LastValue: next}
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "prefix"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_value", "updated_at"}),
		}).
		Create(&counter).Error; err != nil {
		return "", errors.Wrap(err, "failed to store sequence counter")
	}

	return id, nil
}

func (repo *sequenceRepository) Peek(ctx context.Context, key sequence.Key) (string, error) {
	next, err := repo.nextValue(ctx, key, false)
	if err != nil {
		return "", err
	}

	return key.Format(next)
}

// nextValue is one more than the larger of the stored counter and the
// highest suffix present in the entity table.
func (repo *sequenceRepository) nextValue(ctx context.Context, key sequence.Key, lock bool) (int64, error) {
	target, ok := sequenceTargets[key.Scope]
	if !ok {
		return 0, errors.Errorf("unknown sequence scope %q", key.Scope)
	}

	db := repo.db.WithContext(ctx)

	var counter model.SequenceModel
	query := db.Where("scope = ? AND prefix = ?", key.Scope, key.Prefix)
	if lock && isPostgres(db) {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := query.Take(&counter).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, errors.Wrap(err, "failed to read sequence counter")
	}
	highest := counter.LastValue

	// Identifiers in a bucket share prefix and width, so the lexically
	// highest one carries the highest suffix.
	var ids []string
	if err := db.Table(target.table).
		Where(target.column+` LIKE ? ESCAPE '\'`, escapeLike(key.Prefix)+"%").
		Where("LENGTH("+target.column+") = ?", len(key.Prefix)+key.Width).
		Order(target.column+" DESC").
		Limit(1).
		Pluck(target.column, &ids).Error; err != nil {
		return 0, errors.Wrap(err, "failed to scan existing identifiers")
	}
	if len(ids) > 0 {
		if n, ok := key.Suffix(ids[0]); ok && n > highest {
			highest = n
		}
	}

	return highest + 1, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
