package database

import (
	"context"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// promoRepository implements the repository.PromoRepository interface.
type promoRepository struct {
	db *gorm.DB
}

// NewPromoRepository is the constructor for promoRepository.
func NewPromoRepository(db *gorm.DB) repository.PromoRepository {
	return &promoRepository{db: db}
}

// Save inserts a promo or replaces the one stored under the same code.
// The redemption counter of an existing promo is kept.
func (repo *promoRepository) Save(ctx context.Context, promo *entity.Promo) error {
	promoM := fromPromoDomain(promo)
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"type", "rule_summary", "start_date", "end_date", "status", "max_redemptions", "note", "updated_at",
			}),
		}).
		Create(promoM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save promo")
	}

	return nil
}

// FindByCode retrieves a promo by its code.
func (repo *promoRepository) FindByCode(ctx context.Context, code string) (*entity.Promo, error) {
	var promoM model.PromoModel
	if err := repo.db.WithContext(ctx).Where("code = ?", code).First(&promoM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPromoNotFound
		}

		return nil, errors.Wrap(err, "failed to find promo by code")
	}

	return toPromoDomain(&promoM), nil
}

// Update overwrites the editable fields of a promo.
func (repo *promoRepository) Update(ctx context.Context, promo *entity.Promo) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PromoModel{}).
		Where("code = ?", promo.Code).
		Updates(map[string]any{
			"start_date":      promo.StartDate.String(),
			"end_date":        promo.EndDate.Ptr(),
			"max_redemptions": promo.MaxRedemptions,
			"note":            promo.Note,
			"status":          promo.Status,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update promo")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPromoNotFound
	}

	return nil
}

// UpdateStatus stores a recomputed status.
func (repo *promoRepository) UpdateStatus(ctx context.Context, code, status string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PromoModel{}).
		Where("code = ?", code).
		Update("status", status)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update promo status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPromoNotFound
	}

	return nil
}

// List retrieves promos matching the filter, latest start first.
func (repo *promoRepository) List(ctx context.Context, filter entity.PromoFilter) ([]*entity.Promo, error) {
	query := repo.db.WithContext(ctx).Model(&model.PromoModel{})
	if filter.Search != "" {
		query = query.Where(likeAny("code", "rule_summary"), repeatArg(likeContains(filter.Search), 2)...)
	}
	if !matchesAll(filter.Status) {
		query = query.Where("status = ?", filter.Status)
	}

	var promoModels []*model.PromoModel
	if err := query.Order("start_date DESC").Order("code").Find(&promoModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list promos")
	}

	promos := make([]*entity.Promo, 0, len(promoModels))
	for _, promoM := range promoModels {
		promos = append(promos, toPromoDomain(promoM))
	}

	return promos, nil
}

// FindRedemption retrieves a customer's redemption of a promo.
func (repo *promoRepository) FindRedemption(ctx context.Context, code, customerID string) (*entity.PromoRedemption, error) {
	var redemptionM model.PromoRedemptionModel
	if err := repo.db.WithContext(ctx).
		Where("code = ? AND customer_id = ?", code, customerID).
		First(&redemptionM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRedemptionNotFound
		}

		return nil, errors.Wrap(err, "failed to find promo redemption")
	}

	return &entity.PromoRedemption{
		ID:         redemptionM.ID,
		Code:       redemptionM.Code,
		CustomerID: redemptionM.CustomerID,
		OrderID:    redemptionM.OrderID,
		RedeemedAt: redemptionM.RedeemedAt,
	}, nil
}

// CreateRedemption records that a customer used a promo.
func (repo *promoRepository) CreateRedemption(ctx context.Context, redemption *entity.PromoRedemption) error {
	redemptionM := &model.PromoRedemptionModel{
		Code:       redemption.Code,
		CustomerID: redemption.CustomerID,
		OrderID:    redemption.OrderID,
		RedeemedAt: redemption.RedeemedAt,
	}
	if err := repo.db.WithContext(ctx).Create(redemptionM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateRedemption
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create promo redemption")
	}

	redemption.ID = redemptionM.ID

	return nil
}

// IncrementRedemptions adds one to the redemption counter of a promo.
func (repo *promoRepository) IncrementRedemptions(ctx context.Context, code string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PromoModel{}).
		Where("code = ?", code).
		Update("redemptions", gorm.Expr("redemptions + 1"))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment promo redemptions")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPromoNotFound
	}

	return nil
}

func fromPromoDomain(p *entity.Promo) *model.PromoModel {
	return &model.PromoModel{
		Code:           p.Code,
		Type:           p.Type,
		RuleSummary:    p.RuleSummary,
		StartDate:      p.StartDate.String(),
		EndDate:        p.EndDate.Ptr(),
		Status:         p.Status,
		MaxRedemptions: p.MaxRedemptions,
		Redemptions:    p.Redemptions,
		Note:           p.Note,
	}
}

func toPromoDomain(m *model.PromoModel) *entity.Promo {
	return &entity.Promo{
		Code:           m.Code,
		Type:           m.Type,
		RuleSummary:    m.RuleSummary,
		StartDate:      entity.Date(m.StartDate),
		EndDate:        entity.DateFromPtr(m.EndDate),
		Status:         m.Status,
		MaxRedemptions: m.MaxRedemptions,
		Redemptions:    m.Redemptions,
		Note:           m.Note,
	}
}
