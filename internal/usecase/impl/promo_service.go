package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"backoffice/internal/domain/entity"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"
)

var promoExportHeaders = []string{
	"code", "type", "rule_summary", "start_date", "end_date", "status", "max_redemptions", "redemptions", "note",
}

type promoService struct {
	base
}

// NewPromoService creates a new promo service instance
func NewPromoService(params ServiceParams) usecase.PromoUsecase {
	return &promoService{base: newBase(params)}
}

// Save inserts the promo or replaces the stored one with the same code. The
// redemption count of a replaced promo is kept.
func (srv *promoService) Save(ctx context.Context, input *usecase.PromoInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	promo := &entity.Promo{
		Code:           strings.TrimSpace(input.Code),
		Type:           strings.TrimSpace(input.Type),
		RuleSummary:    strings.TrimSpace(input.RuleSummary),
		MaxRedemptions: input.MaxRedemptions,
		Note:           strings.TrimSpace(input.Note),
	}
	if err := srv.applyWindow(promo, input.StartDate, input.EndDate, input.Status); err != nil {
		return nil, err
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewPromoRepository().Save(ctx, promo)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Promo saved",
		slog.String("code", promo.Code),
		slog.String("status", promo.Status),
	)

	return entity.Succeeded(promo.Code, "Promo saved"), nil
}

// applyWindow sets the dates of promo and the status they imply today.
func (srv *promoService) applyWindow(promo *entity.Promo, start, end, status string) error {
	var err error
	if promo.StartDate, err = parseDate("start_date", start); err != nil {
		return err
	}
	if promo.EndDate, err = parseDate("end_date", end); err != nil {
		return err
	}
	if promo.StartDate.IsZero() {
		return invalid("start_date is required")
	}
	if !promo.EndDate.IsZero() && promo.EndDate.Before(promo.StartDate) {
		return invalid("end_date must not be before start_date")
	}

	status = strings.TrimSpace(status)
	if status != "" && !entity.PromoLifecycle.Valid(status) {
		return invalid(fmt.Sprintf("status must be one of %s", strings.Join(entity.PromoLifecycle.Statuses(), ", ")))
	}
	promo.Status = entity.PromoLifecycle.Derive(promo.StartDate, promo.EndDate, srv.today(), status)

	return nil
}

// refresh derives the status of every promo as of today, writing changed
// statuses back when persistence is on.
func (srv *promoService) refresh(ctx context.Context, repo repository.PromoRepository, promos ...*entity.Promo) error {
	today := srv.today()
	for _, promo := range promos {
		status := entity.PromoLifecycle.Derive(promo.StartDate, promo.EndDate, today, promo.Status)
		if status == promo.Status {
			continue
		}

		promo.Status = status
		if !srv.persistStatus() {
			continue
		}
		if err := repo.UpdateStatus(ctx, promo.Code, status); err != nil {
			return err
		}
	}

	return nil
}

// List returns promos, latest start first, filtered on their derived status
func (srv *promoService) List(ctx context.Context, filter entity.PromoFilter) ([]*entity.Promo, error) {
	var promos []*entity.Promo
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewPromoRepository()

		var err error
		promos, err = repo.List(ctx, entity.PromoFilter{Search: filter.Search})
		if err != nil {
			return err
		}

		return srv.refresh(ctx, repo, promos...)
	})
	if err != nil {
		return nil, translate(err)
	}

	if strings.EqualFold(filter.Status, "all") || filter.Status == "" {
		return promos, nil
	}

	matched := promos[:0]
	for _, promo := range promos {
		if promo.Status == filter.Status {
			matched = append(matched, promo)
		}
	}

	return matched, nil
}

func (srv *promoService) Get(ctx context.Context, code string) (*entity.Promo, error) {
	var promo *entity.Promo
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewPromoRepository()

		var err error
		if promo, err = repo.FindByCode(ctx, code); err != nil {
			return err
		}

		return srv.refresh(ctx, repo, promo)
	})
	if err != nil {
		return nil, translate(err)
	}

	return promo, nil
}

// Update edits the window, limit, note and status of a promo. The stored
// status is the one the new dates imply.
func (srv *promoService) Update(ctx context.Context, code string, input *usecase.PromoUpdate) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewPromoRepository()

		promo, err := repo.FindByCode(ctx, code)
		if err != nil {
			return err
		}

		before := promo.Snapshot()
		promo.MaxRedemptions = input.MaxRedemptions
		promo.Note = strings.TrimSpace(input.Note)
		if err := srv.applyWindow(promo, input.StartDate, input.EndDate, orDefault(input.Status, promo.Status)); err != nil {
			return err
		}
		if err := repo.Update(ctx, promo); err != nil {
			return err
		}

		event, err = srv.recorder.record(ctx, repoFactory, promoTracker,
			target(entity.NamespacePromos, code), before, promo.Snapshot())

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(code, "Promo updated"), nil
}

func (srv *promoService) Stats(ctx context.Context) (*entity.PromoStats, error) {
	promos, err := srv.List(ctx, entity.PromoFilter{})
	if err != nil {
		return nil, err
	}

	stats := &entity.PromoStats{}
	for _, promo := range promos {
		switch promo.Status {
		case entity.PromoStatusActive:
			stats.Active++
		case entity.PromoStatusUsed:
			stats.Used++
		case entity.PromoStatusExpired:
			stats.Expired++
		}
	}

	return stats, nil
}

// RecordRedemption stores a customer's first use of an active promo and
// counts it. Further uses by the same customer are accepted uncounted.
func (srv *promoService) RecordRedemption(ctx context.Context, code string, input *usecase.RedemptionInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	customerID := strings.TrimSpace(input.CustomerID)

	var counted bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewPromoRepository()

		promo, err := repo.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if err := srv.refresh(ctx, repo, promo); err != nil {
			return err
		}
		if promo.Status != entity.PromoStatusActive {
			return domainerrors.ErrPromoNotRedeemable
		}

		if _, err := repo.FindRedemption(ctx, code, customerID); err == nil {
			return nil
		} else if !errors.Is(err, repository.ErrRedemptionNotFound) {
			return err
		}

		if promo.MaxRedemptions != nil && promo.Redemptions >= *promo.MaxRedemptions {
			return domainerrors.ErrRedemptionLimitReached
		}

		if err := repo.CreateRedemption(ctx, &entity.PromoRedemption{
			Code:       code,
			CustomerID: customerID,
			OrderID:    strings.TrimSpace(input.OrderID),
			RedeemedAt: srv.clock.Now().UTC(),
		}); err != nil {
			return err
		}
		counted = true

		return repo.IncrementRedemptions(ctx, code)
	})
	if err != nil {
		return nil, translate(err)
	}

	if !counted {
		return entity.Succeeded(code, "Promo already redeemed by customer"), nil
	}

	return entity.Succeeded(code, "Redemption recorded"), nil
}

func (srv *promoService) Logs(ctx context.Context, code string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespacePromos, code)
}

// Import adds promos with new codes, redemption counters included. Rows
// missing a required column are skipped; existing codes are left untouched.
func (srv *promoService) Import(ctx context.Context, rows usecase.Rows) (*entity.ImportSummary, error) {
	return srv.runImport(ctx, entity.NamespacePromos, rows, func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error) {
		code := row.get("code")
		promo := &entity.Promo{
			Code:        code,
			Type:        row.get("type"),
			RuleSummary: row.get("rule_summary"),
			Note:        row.get("note"),
		}
		status := row.get("status")
		if code == "" || promo.Type == "" || promo.RuleSummary == "" || row.get("start_date") == "" || status == "" {
			return skipped("code, type, rule_summary, start_date and status are required"), nil
		}

		if raw := row.get("max_redemptions"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return rowResult{}, rejectRow("max_redemptions must be a whole number")
			}
			promo.MaxRedemptions = &limit
		}
		redemptions, err := row.intValue("redemptions", "redemptions")
		if err != nil {
			return rowResult{}, err
		}
		if redemptions < 0 {
			return rowResult{}, rejectRow("redemptions must not be negative")
		}
		promo.Redemptions = redemptions

		if err := srv.applyWindow(promo, row.get("start_date"), row.get("end_date"), status); err != nil {
			return rowResult{}, err
		}

		repo := repoFactory.NewPromoRepository()
		if _, err := repo.FindByCode(ctx, code); err == nil {
			return skipped("promo code already exists"), nil
		} else if !isNotFound(err) {
			return rowResult{}, err
		}

		if err := repo.Save(ctx, promo); err != nil {
			return rowResult{}, err
		}

		return added(), nil
	})
}

func (srv *promoService) Export(ctx context.Context, format string) (*usecase.Export, error) {
	promos, err := srv.List(ctx, entity.PromoFilter{})
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(promoExportHeaders...)
	for _, p := range promos {
		limit := ""
		if p.MaxRedemptions != nil {
			limit = strconv.Itoa(*p.MaxRedemptions)
		}
		table.Append(p.Code, p.Type, p.RuleSummary, p.StartDate.String(), p.EndDate.String(),
			p.Status, limit, strconv.Itoa(p.Redemptions), p.Note)
	}

	return srv.exporter.render(ctx, entity.NamespacePromos, format, table)
}
