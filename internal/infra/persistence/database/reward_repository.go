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

// rewardRepository implements the repository.RewardRepository interface.
type rewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository is the constructor for rewardRepository.
func NewRewardRepository(db *gorm.DB) repository.RewardRepository {
	return &rewardRepository{db: db}
}

// SaveRule inserts a reward rule or replaces the one stored under the same id.
func (repo *rewardRepository) SaveRule(ctx context.Context, rule *entity.RewardRule) error {
	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rule", "start_date", "end_date", "note", "status", "min_spend",
				"reference_code", "customer_id", "points", "updated_at",
			}),
		}).
		Create(fromRewardRuleDomain(rule)).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save reward rule")
	}

	return nil
}

// FindRuleByID retrieves a reward rule by its identifier.
func (repo *rewardRepository) FindRuleByID(ctx context.Context, id string) (*entity.RewardRule, error) {
	var ruleM model.RewardRuleModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&ruleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRewardRuleNotFound
		}

		return nil, errors.Wrap(err, "failed to find reward rule by ID")
	}

	return toRewardRuleDomain(&ruleM), nil
}

// UpdateRule overwrites the editable fields of a reward rule.
func (repo *rewardRepository) UpdateRule(ctx context.Context, rule *entity.RewardRule) error {
	result := repo.db.WithContext(ctx).
		Model(&model.RewardRuleModel{}).
		Where("id = ?", rule.ID).
		Updates(map[string]any{
			"start_date": rule.StartDate.String(),
			"end_date":   rule.EndDate.Ptr(),
			"status":     rule.Status,
			"note":       rule.Note,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update reward rule")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRewardRuleNotFound
	}

	return nil
}

// ListRules retrieves every reward rule, latest start first.
func (repo *rewardRepository) ListRules(ctx context.Context) ([]*entity.RewardRule, error) {
	var ruleModels []*model.RewardRuleModel
	if err := repo.db.WithContext(ctx).Order("start_date DESC").Order("id").Find(&ruleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reward rules")
	}

	rules := make([]*entity.RewardRule, 0, len(ruleModels))
	for _, ruleM := range ruleModels {
		rules = append(rules, toRewardRuleDomain(ruleM))
	}

	return rules, nil
}

// CreateConversionRate stores a new conversion rate.
func (repo *rewardRepository) CreateConversionRate(ctx context.Context, rate *entity.ConversionRate) error {
	rateM := &model.ConversionRateModel{
		Points: rate.Points,
		Peso:   rate.Peso,
		Date:   rate.Date.String(),
	}
	if err := repo.db.WithContext(ctx).Create(rateM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create conversion rate")
	}

	rate.ID = rateM.ID
	rate.CreatedAt = rateM.CreatedAt

	return nil
}

// LatestConversionRate retrieves the rate in force.
func (repo *rewardRepository) LatestConversionRate(ctx context.Context) (*entity.ConversionRate, error) {
	var rateM model.ConversionRateModel
	if err := repo.db.WithContext(ctx).
		Order("date DESC").
		Order("id DESC").
		First(&rateM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrConversionRateNotFound
		}

		return nil, errors.Wrap(err, "failed to find latest conversion rate")
	}

	return &entity.ConversionRate{
		ID:        rateM.ID,
		Points:    rateM.Points,
		Peso:      rateM.Peso,
		Date:      entity.Date(rateM.Date),
		CreatedAt: rateM.CreatedAt,
	}, nil
}

func fromRewardRuleDomain(r *entity.RewardRule) *model.RewardRuleModel {
	return &model.RewardRuleModel{
		ID:            r.ID,
		Rule:          r.Rule,
		StartDate:     r.StartDate.String(),
		EndDate:       r.EndDate.Ptr(),
		Note:          r.Note,
		Status:        r.Status,
		MinSpend:      toNullDecimal(r.MinSpend),
		ReferenceCode: r.ReferenceCode,
		CustomerID:    r.CustomerID,
		Points:        r.Points,
	}
}

func toRewardRuleDomain(m *model.RewardRuleModel) *entity.RewardRule {
	return &entity.RewardRule{
		ID:            m.ID,
		Rule:          m.Rule,
		StartDate:     entity.Date(m.StartDate),
		EndDate:       entity.DateFromPtr(m.EndDate),
		Note:          m.Note,
		Status:        m.Status,
		MinSpend:      fromNullDecimal(m.MinSpend),
		ReferenceCode: m.ReferenceCode,
		CustomerID:    m.CustomerID,
		Points:        m.Points,
	}
}
