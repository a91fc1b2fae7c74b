package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
)

var rewardExportHeaders = []string{
	"id", "rule", "start_date", "end_date", "note", "status", "min_spend", "reference_code", "customer_id", "points",
}

type rewardService struct {
	base
}

// NewRewardService creates a new reward service instance
func NewRewardService(params ServiceParams) usecase.RewardUsecase {
	return &rewardService{base: newBase(params)}
}

// SaveRule inserts the rule or replaces the stored one with the same id. A
// rule without id gets the next RW- identifier.
func (srv *rewardService) SaveRule(ctx context.Context, input *usecase.RewardRuleInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.IsZero() && end.Before(start) {
		return nil, invalid("end_date must not be before start_date")
	}
	if input.MinSpend != nil && input.MinSpend.IsNegative() {
		return nil, invalid("min_spend must not be negative")
	}

	rule := &entity.RewardRule{
		ID:            strings.TrimSpace(input.ID),
		Rule:          strings.TrimSpace(input.Rule),
		StartDate:     start,
		EndDate:       end,
		Note:          strings.TrimSpace(input.Note),
		Status:        orDefault(strings.TrimSpace(input.Status), entity.StatusActive),
		MinSpend:      input.MinSpend,
		ReferenceCode: strings.TrimSpace(input.ReferenceCode),
		CustomerID:    strings.TrimSpace(input.CustomerID),
		Points:        input.Points,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if rule.ID == "" {
			id, err := repoFactory.NewSequenceRepository().Next(ctx, srv.schemes.RewardRule.At(srv.clock.Now()))
			if err != nil {
				return err
			}
			rule.ID = id
		}

		return repoFactory.NewRewardRepository().SaveRule(ctx, rule)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Reward rule saved", slog.String("id", rule.ID))

	return entity.Succeeded(rule.ID, "Reward rule saved"), nil
}

func (srv *rewardService) ListRules(ctx context.Context) ([]*entity.RewardRule, error) {
	var rules []*entity.RewardRule
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		rules, err = repoFactory.NewRewardRepository().ListRules(ctx)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return rules, nil
}

func (srv *rewardService) GetRule(ctx context.Context, id string) (*entity.RewardRule, error) {
	var rule *entity.RewardRule
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		rule, err = repoFactory.NewRewardRepository().FindRuleByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return rule, nil
}

func (srv *rewardService) UpdateRule(ctx context.Context, id string, input *usecase.RewardRuleUpdate) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	start, err := parseDate("start_date", input.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("end_date", input.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.IsZero() && end.Before(start) {
		return nil, invalid("end_date must not be before start_date")
	}

	var event *service.ChangeEvent
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewRewardRepository()

		rule, err := repo.FindRuleByID(ctx, id)
		if err != nil {
			return err
		}

		before := rule.Snapshot()
		rule.StartDate = start
		rule.EndDate = end
		rule.Status = strings.TrimSpace(input.Status)
		rule.Note = strings.TrimSpace(input.Note)
		if err := repo.UpdateRule(ctx, rule); err != nil {
			return err
		}

		event, err = srv.recorder.record(ctx, repoFactory, rewardRuleTracker,
			target(entity.NamespaceRewardRules, id), before, rule.Snapshot())

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Reward rule updated"), nil
}

func (srv *rewardService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceRewardRules, id)
}

func (srv *rewardService) Export(ctx context.Context, format string) (*usecase.Export, error) {
	rules, err := srv.ListRules(ctx)
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(rewardExportHeaders...)
	for _, r := range rules {
		table.Append(r.ID, r.Rule, r.StartDate.String(), r.EndDate.String(), r.Note, r.Status,
			formatDecimal(r.MinSpend, 2), r.ReferenceCode, r.CustomerID, strconv.Itoa(r.Points))
	}

	return srv.exporter.render(ctx, entity.NamespaceRewardRules, format, table)
}

// SaveConversionRate records a new rate. The latest dated rate is the one in force.
func (srv *rewardService) SaveConversionRate(ctx context.Context, input *usecase.ConversionRateInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if !input.Peso.IsPositive() {
		return nil, invalid("peso must be greater than 0")
	}

	date, err := parseDate("date", input.Date)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = srv.today()
	}

	rate := &entity.ConversionRate{
		Points: input.Points,
		Peso:   input.Peso,
		Date:   date,
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewRewardRepository().CreateConversionRate(ctx, rate)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Conversion rate saved",
		slog.Int("points", rate.Points),
		slog.String("peso", rate.Peso.String()),
		slog.String("date", rate.Date.String()),
	)

	return entity.Succeeded(strconv.FormatUint(rate.ID, 10), "Conversion rate saved"), nil
}

func (srv *rewardService) LatestConversionRate(ctx context.Context) (*entity.ConversionRate, error) {
	var rate *entity.ConversionRate
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		rate, err = repoFactory.NewRewardRepository().LatestConversionRate(ctx)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return rate, nil
}

// pointsValue prices points at the given rate, rounded to centavos.
func pointsValue(points int, rate *entity.ConversionRate) decimal.Decimal {
	return rate.PesoPerPoint().Mul(decimal.NewFromInt(int64(points))).Round(2)
}
