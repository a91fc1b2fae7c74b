package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
)

var ledgerExportHeaders = []string{
	"Transaction ID", "Date", "Customer ID", "Customer Name", "Type",
	"Points", "Equivalent Value", "Conversion Rate", "Order Number", "Notes",
}

type ledgerService struct {
	base
}

// NewLedgerService creates a new rewards ledger service instance
func NewLedgerService(params ServiceParams) usecase.LedgerUsecase {
	return &ledgerService{base: newBase(params)}
}

// Add records a points movement dated now. Without an explicit equivalent
// value the points are priced at the rate in force; with no rate ever set
// the entry is stored unpriced.
func (srv *ledgerService) Add(ctx context.Context, input *usecase.LedgerInput) (*entity.Result, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.EquivalentValue != nil && input.EquivalentValue.IsNegative() {
		return nil, invalid("equivalent_value must not be negative")
	}

	entry := &entity.LedgerEntry{
		Date:            srv.clock.Now().UTC(),
		CustomerID:      strings.TrimSpace(input.CustomerID),
		CustomerName:    strings.TrimSpace(input.CustomerName),
		Type:            input.Type,
		Points:          input.Points,
		EquivalentValue: input.EquivalentValue,
		OrderNumber:     strings.TrimSpace(input.OrderNumber),
		Notes:           strings.TrimSpace(input.Notes),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.price(ctx, repoFactory, entry); err != nil {
			return err
		}
		if err := srv.fillCustomerName(ctx, repoFactory, entry); err != nil {
			return err
		}

		id, err := repoFactory.NewSequenceRepository().Next(ctx, srv.schemes.Ledger.At(srv.clock.Now()))
		if err != nil {
			return err
		}
		entry.ID = id

		return repoFactory.NewLedgerRepository().Create(ctx, entry)
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Ledger entry added",
		slog.String("id", entry.ID),
		slog.String("customer_id", entry.CustomerID),
		slog.String("type", entry.Type),
		slog.Int("points", entry.Points),
	)

	return entity.Succeeded(entry.ID, "Ledger entry added"), nil
}

func (srv *ledgerService) price(ctx context.Context, repoFactory repository.RepositoryFactory, entry *entity.LedgerEntry) error {
	rate, err := repoFactory.NewRewardRepository().LatestConversionRate(ctx)
	if errors.Is(err, repository.ErrConversionRateNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	perPoint := rate.PesoPerPoint()
	entry.ConversionRate = &perPoint
	if entry.EquivalentValue == nil {
		value := pointsValue(entry.Points, rate)
		entry.EquivalentValue = &value
	}

	return nil
}

// fillCustomerName copies the name of a known customer when none was given.
func (srv *ledgerService) fillCustomerName(ctx context.Context, repoFactory repository.RepositoryFactory, entry *entity.LedgerEntry) error {
	if entry.CustomerName != "" {
		return nil
	}

	customer, err := repoFactory.NewCustomerRepository().FindByID(ctx, entry.CustomerID)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	entry.CustomerName = strings.TrimSpace(customer.FirstName + " " + customer.LastName)

	return nil
}

// filter turns calendar days in the business timezone into an instant range.
func (srv *ledgerService) filter(query usecase.LedgerQuery) (entity.LedgerFilter, error) {
	filter := entity.LedgerFilter{
		CustomerID: strings.TrimSpace(query.CustomerID),
		Type:       strings.TrimSpace(query.Type),
	}

	from, err := parseDate("from", query.From)
	if err != nil {
		return filter, err
	}
	to, err := parseDate("to", query.To)
	if err != nil {
		return filter, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return filter, invalid("to must not be before from")
	}

	if !from.IsZero() {
		filter.From = srv.startOfDay(from)
	}
	if !to.IsZero() {
		filter.Until = srv.startOfDay(to).AddDate(0, 0, 1)
	}

	return filter, nil
}

func (srv *ledgerService) startOfDay(day entity.Date) time.Time {
	t, _ := time.ParseInLocation(entity.DateLayout, day.String(), srv.zone)

	return t
}

// List returns matching entries, latest first
func (srv *ledgerService) List(ctx context.Context, query usecase.LedgerQuery) ([]*entity.LedgerEntry, error) {
	filter, err := srv.filter(query)
	if err != nil {
		return nil, err
	}

	var entries []*entity.LedgerEntry
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		entries, err = repoFactory.NewLedgerRepository().List(ctx, filter)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return entries, nil
}

func (srv *ledgerService) Get(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	var entry *entity.LedgerEntry
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		entry, err = repoFactory.NewLedgerRepository().FindByID(ctx, id)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return entry, nil
}

// UpdateNotes replaces the notes of an entry, the only field editable after
// it is recorded.
func (srv *ledgerService) UpdateNotes(ctx context.Context, id, notes string) (*entity.Result, error) {
	var event *service.ChangeEvent
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewLedgerRepository()

		entry, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		before := entry.Snapshot()
		entry.Notes = strings.TrimSpace(notes)
		if err := repo.UpdateNotes(ctx, id, entry.Notes); err != nil {
			return err
		}

		event, err = srv.recorder.record(ctx, repoFactory, ledgerTracker,
			target(entity.NamespaceLedger, id), before, entry.Snapshot())

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Notes updated"), nil
}

func (srv *ledgerService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceLedger, id)
}

// Export writes the entries matching query. Dates are rendered in the
// business timezone.
func (srv *ledgerService) Export(ctx context.Context, format string, query usecase.LedgerQuery) (*usecase.Export, error) {
	entries, err := srv.List(ctx, query)
	if err != nil {
		return nil, err
	}

	table := tabular.NewTable(ledgerExportHeaders...)
	for _, e := range entries {
		table.Append(
			e.ID,
			e.Date.In(srv.zone).Format(time.RFC3339),
			e.CustomerID,
			e.CustomerName,
			e.Type,
			strconv.Itoa(e.Points),
			formatDecimal(e.EquivalentValue, 2),
			formatDecimal(e.ConversionRate, 4),
			e.OrderNumber,
			e.Notes,
		)
	}

	return srv.exporter.render(ctx, entity.NamespaceLedger, format, table)
}

func formatDecimal(d *decimal.Decimal, places int32) string {
	if d == nil {
		return ""
	}

	return d.StringFixed(places)
}
