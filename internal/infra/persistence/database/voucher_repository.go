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

// voucherRepository implements the repository.VoucherRepository interface.
type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository is the constructor for voucherRepository.
func NewVoucherRepository(db *gorm.DB) repository.VoucherRepository {
	return &voucherRepository{db: db}
}

// Create persists a new voucher.
func (repo *voucherRepository) Create(ctx context.Context, voucher *entity.Voucher) error {
	voucherM := fromVoucherDomain(voucher)
	if err := repo.db.WithContext(ctx).Create(voucherM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateVoucher
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create voucher")
	}

	voucher.CreatedAt = voucherM.CreatedAt

	return nil
}

// FindByID retrieves a voucher by its serial.
func (repo *voucherRepository) FindByID(ctx context.Context, id string) (*entity.Voucher, error) {
	var voucherM model.VoucherModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&voucherM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVoucherNotFound
		}

		return nil, errors.Wrap(err, "failed to find voucher by ID")
	}

	return toVoucherDomain(&voucherM), nil
}

// existingIDsBatch keeps IN lists below SQLite's bound parameter limit.
const existingIDsBatch = 500

// ExistingIDs returns which of ids are already stored.
func (repo *voucherRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	existing := make(map[string]bool)
	for start := 0; start < len(ids); start += existingIDsBatch {
		end := min(start+existingIDsBatch, len(ids))

		var found []string
		if err := repo.db.WithContext(ctx).
			Model(&model.VoucherModel{}).
			Where("id IN ?", ids[start:end]).
			Pluck("id", &found).Error; err != nil {
			return nil, errors.Wrap(err, "failed to look up voucher ids")
		}
		for _, id := range found {
			existing[id] = true
		}
	}

	return existing, nil
}

// Update overwrites the editable fields of a voucher.
func (repo *voucherRepository) Update(ctx context.Context, voucher *entity.Voucher) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VoucherModel{}).
		Where("id = ?", voucher.ID).
		Updates(map[string]any{
			"refill":     voucher.Refill,
			"start_date": voucher.StartDate.String(),
			"end_date":   voucher.EndDate.Ptr(),
			"status":     voucher.Status,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update voucher")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVoucherNotFound
	}

	return nil
}

// UpdateStatus stores a recomputed status.
func (repo *voucherRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VoucherModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update voucher status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrVoucherNotFound
	}

	return nil
}

// List retrieves one page of vouchers ordered by serial and the total number of matches.
func (repo *voucherRepository) List(ctx context.Context, filter entity.VoucherFilter) ([]*entity.Voucher, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.VoucherModel{})
	if filter.Search != "" {
		query = query.Where(likeAny("id"), likeContains(filter.Search))
	}
	if !matchesAll(filter.Status) {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count vouchers")
	}

	query = query.Order("id")
	if filter.Limit > 0 {
		page := max(filter.Page, 1)
		query = query.Offset((page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var voucherModels []*model.VoucherModel
	if err := query.Find(&voucherModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list vouchers")
	}

	vouchers := make([]*entity.Voucher, 0, len(voucherModels))
	for _, voucherM := range voucherModels {
		vouchers = append(vouchers, toVoucherDomain(voucherM))
	}

	return vouchers, total, nil
}

// CountByStatus counts vouchers per stored status.
func (repo *voucherRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Status string
		Total  int
	}
	if err := repo.db.WithContext(ctx).
		Model(&model.VoucherModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count vouchers by status")
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}

	return counts, nil
}

func fromVoucherDomain(v *entity.Voucher) *model.VoucherModel {
	return &model.VoucherModel{
		ID:        v.ID,
		Refill:    v.Refill,
		StartDate: v.StartDate.String(),
		EndDate:   v.EndDate.Ptr(),
		Status:    v.Status,
		DateAdded: v.DateAdded.String(),
	}
}

func toVoucherDomain(m *model.VoucherModel) *entity.Voucher {
	return &entity.Voucher{
		ID:        m.ID,
		Refill:    m.Refill,
		StartDate: entity.Date(m.StartDate),
		EndDate:   entity.DateFromPtr(m.EndDate),
		Status:    m.Status,
		DateAdded: entity.Date(m.DateAdded),
		CreatedAt: m.CreatedAt,
	}
}
