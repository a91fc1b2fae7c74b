package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"go.uber.org/fx"
)

const (
	defaultVoucherLimit = 10
	maxVoucherBatch     = 10000
)

var voucherExportHeaders = []string{"id", "refill", "start_date", "end_date", "status", "date_added"}

type voucherService struct {
	base
	qrcodeService service.QRCodeService
}

// VoucherServiceParams holds dependencies for VoucherService, injected by Fx.
type VoucherServiceParams struct {
	fx.In

	Common        ServiceParams
	QRCodeService service.QRCodeService
}

// NewVoucherService creates a new voucher service instance
func NewVoucherService(params VoucherServiceParams) usecase.VoucherUsecase {
	return &voucherService{
		base:          newBase(params.Common),
		qrcodeService: params.QRCodeService,
	}
}

// Save stores one voucher per selected serial. Serials already in the store
// are skipped, the rest start Scheduled or in Circulation depending on the
// start date.
func (srv *voucherService) Save(ctx context.Context, input *usecase.SaveVouchersInput) (*entity.SaveVouchersOutcome, error) {
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

	ids, err := explicitVoucherIDs(input)
	if err != nil {
		return nil, err
	}

	today := srv.today()
	outcome := &entity.SaveVouchersOutcome{}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if input.Quantity > 0 {
			if ids, err = srv.allocate(ctx, repoFactory, input.Quantity); err != nil {
				return err
			}
		}

		repo := repoFactory.NewVoucherRepository()
		existing, err := repo.ExistingIDs(ctx, ids)
		if err != nil {
			return err
		}

		for _, id := range ids {
			if existing[id] {
				outcome.Skipped++

				continue
			}

			if err := repo.Create(ctx, &entity.Voucher{
				ID:        id,
				Refill:    input.Refill,
				StartDate: start,
				EndDate:   end,
				Status:    entity.VoucherLifecycle.Derive(start, end, today, ""),
				DateAdded: today,
			}); err != nil {
				return err
			}
			existing[id] = true
			outcome.Saved++
			outcome.IDs = append(outcome.IDs, id)
		}

		return nil
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.getLogger(ctx).InfoContext(ctx, "Vouchers saved",
		slog.Int("saved", outcome.Saved),
		slog.Int("skipped", outcome.Skipped),
	)

	return outcome, nil
}

// explicitVoucherIDs expands a single serial or a range. It returns nil when
// the batch is sized by quantity instead.
func explicitVoucherIDs(input *usecase.SaveVouchersInput) ([]string, error) {
	single := strings.TrimSpace(input.ID)
	from, to := strings.TrimSpace(input.From), strings.TrimSpace(input.To)
	ranged := from != "" || to != ""

	selectors := 0
	for _, set := range []bool{single != "", ranged, input.Quantity > 0} {
		if set {
			selectors++
		}
	}
	if selectors != 1 {
		return nil, invalid("give exactly one of id, from/to or quantity")
	}
	if input.Quantity > maxVoucherBatch {
		return nil, invalid(fmt.Sprintf("at most %d vouchers can be saved at once", maxVoucherBatch))
	}

	switch {
	case single != "":
		id, err := padVoucherID(single)
		if err != nil {
			return nil, err
		}

		return []string{id}, nil
	case ranged:
		first, err := voucherSerial(from)
		if err != nil {
			return nil, err
		}
		last, err := voucherSerial(to)
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, invalid("from must not be greater than to")
		}
		if last-first+1 > maxVoucherBatch {
			return nil, invalid(fmt.Sprintf("at most %d vouchers can be saved at once", maxVoucherBatch))
		}

		ids := make([]string, 0, last-first+1)
		for n := first; n <= last; n++ {
			ids = append(ids, formatVoucherID(n))
		}

		return ids, nil
	default:
		return nil, nil
	}
}

// allocate reserves quantity fresh serials from the voucher sequence.
func (srv *voucherService) allocate(ctx context.Context, repoFactory repository.RepositoryFactory, quantity int) ([]string, error) {
	seq := repoFactory.NewSequenceRepository()
	key := srv.schemes.Voucher.At(srv.clock.Now())

	ids := make([]string, 0, quantity)
	for range quantity {
		id, err := seq.Next(ctx, key)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func voucherSerial(s string) (int64, error) {
	if len(s) > entity.VoucherIDWidth {
		return 0, invalid(fmt.Sprintf("voucher id %q is longer than %d digits", s, entity.VoucherIDWidth))
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, invalid(fmt.Sprintf("voucher id %q must be numeric", s))
	}

	return n, nil
}

func padVoucherID(s string) (string, error) {
	n, err := voucherSerial(s)
	if err != nil {
		return "", err
	}

	return formatVoucherID(n), nil
}

func formatVoucherID(n int64) string {
	return fmt.Sprintf("%0*d", entity.VoucherIDWidth, n)
}

// refresh derives the status of every voucher as of today, writing changed
// statuses back when persistence is on.
func (srv *voucherService) refresh(ctx context.Context, repo repository.VoucherRepository, vouchers ...*entity.Voucher) error {
	today := srv.today()
	for _, voucher := range vouchers {
		status := entity.VoucherLifecycle.Derive(voucher.StartDate, voucher.EndDate, today, voucher.Status)
		if status == voucher.Status {
			continue
		}

		voucher.Status = status
		if !srv.persistStatus() {
			continue
		}
		if err := repo.UpdateStatus(ctx, voucher.ID, status); err != nil {
			return err
		}
	}

	return nil
}

// refreshAll brings every stored status up to date before a status based
// query. Without persistence there is nothing to write.
func (srv *voucherService) refreshAll(ctx context.Context, repo repository.VoucherRepository) error {
	if !srv.persistStatus() {
		return nil
	}

	all, _, err := repo.List(ctx, entity.VoucherFilter{})
	if err != nil {
		return err
	}

	return srv.refresh(ctx, repo, all...)
}

// List returns one page of vouchers. The page defaults to 1 and the limit to 10.
func (srv *voucherService) List(ctx context.Context, filter entity.VoucherFilter) (*entity.Page[*entity.Voucher], error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultVoucherLimit
	}

	page := &entity.Page[*entity.Voucher]{Page: filter.Page, Limit: filter.Limit}
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewVoucherRepository()
		if err := srv.refreshAll(ctx, repo); err != nil {
			return err
		}

		var err error
		if page.Data, page.Total, err = repo.List(ctx, filter); err != nil {
			return err
		}

		return srv.refresh(ctx, repo, page.Data...)
	})
	if err != nil {
		return nil, translate(err)
	}

	return page, nil
}

func (srv *voucherService) Get(ctx context.Context, id string) (*entity.Voucher, error) {
	var voucher *entity.Voucher
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewVoucherRepository()

		var err error
		if voucher, err = repo.FindByID(ctx, id); err != nil {
			return err
		}

		return srv.refresh(ctx, repo, voucher)
	})
	if err != nil {
		return nil, translate(err)
	}

	return voucher, nil
}

// Update edits a voucher. The stored status is the one the new dates imply.
func (srv *voucherService) Update(ctx context.Context, id string, input *usecase.VoucherUpdate) (*entity.Result, error) {
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
	status := strings.TrimSpace(input.Status)
	if status != "" && !entity.VoucherLifecycle.Valid(status) {
		return nil, invalid("status must be one of " + strings.Join(entity.VoucherLifecycle.Statuses(), ", "))
	}

	var event *service.ChangeEvent
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewVoucherRepository()

		voucher, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		before := voucher.Snapshot()
		voucher.Refill = input.Refill
		voucher.StartDate = start
		voucher.EndDate = end
		voucher.Status = entity.VoucherLifecycle.Derive(start, end, srv.today(), orDefault(status, voucher.Status))
		if err := repo.Update(ctx, voucher); err != nil {
			return err
		}

		event, err = srv.recorder.record(ctx, repoFactory, voucherTracker,
			target(entity.NamespaceVouchers, id), before, voucher.Snapshot())

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	srv.recorder.publish(ctx, event)

	return entity.Succeeded(id, "Voucher updated"), nil
}

func (srv *voucherService) Summary(ctx context.Context) (*entity.VoucherSummary, error) {
	var counts map[string]int
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewVoucherRepository()

		if !srv.persistStatus() {
			all, _, err := repo.List(ctx, entity.VoucherFilter{})
			if err != nil {
				return err
			}
			if err := srv.refresh(ctx, repo, all...); err != nil {
				return err
			}
			counts = make(map[string]int)
			for _, voucher := range all {
				counts[voucher.Status]++
			}

			return nil
		}

		if err := srv.refreshAll(ctx, repo); err != nil {
			return err
		}

		var err error
		counts, err = repo.CountByStatus(ctx)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return &entity.VoucherSummary{
		Circulation: counts[entity.VoucherStatusCirculation],
		Used:        counts[entity.VoucherStatusUsed],
		Expired:     counts[entity.VoucherStatusExpired],
		Scheduled:   counts[entity.VoucherStatusScheduled],
	}, nil
}

// QRCode renders the serial of a stored voucher
func (srv *voucherService) QRCode(ctx context.Context, id string) ([]byte, error) {
	voucher, err := srv.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateVoucherQR(voucher.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate voucher QR")
	}

	return png, nil
}

// Lookup resolves scanned QR payload text to its voucher
func (srv *voucherService) Lookup(ctx context.Context, qrData string) (*entity.Voucher, error) {
	id, err := srv.qrcodeService.ParseVoucherQR(qrData)
	if err != nil {
		return nil, invalid(err.Error())
	}

	return srv.Get(ctx, id)
}

func (srv *voucherService) Logs(ctx context.Context, id string) ([]*entity.ChangeLogEntry, error) {
	return srv.logs(ctx, entity.NamespaceVouchers, id)
}

// Import adds vouchers with new 10 digit serials. Rows without a serial,
// a positive refill or a start date are skipped; unknown statuses become
// Circulation.
func (srv *voucherService) Import(ctx context.Context, rows usecase.Rows) (*entity.ImportSummary, error) {
	return srv.runImport(ctx, entity.NamespaceVouchers, rows, func(ctx context.Context, repoFactory repository.RepositoryFactory, row rowValues) (rowResult, error) {
		id := row.get("id")
		refill, refillErr := strconv.Atoi(row.get("refill"))
		if len(id) != entity.VoucherIDWidth || refillErr != nil || refill <= 0 || row.get("start_date") == "" {
			return skipped("id (10 digits), refill and start_date are required"), nil
		}
		if _, err := voucherSerial(id); err != nil {
			return skipped(fmt.Sprintf("voucher id %q must be numeric", id)), nil
		}

		start, err := row.dateValue("start_date", "start_date")
		if err != nil {
			return rowResult{}, err
		}
		end, err := row.dateValue("end_date", "end_date")
		if err != nil {
			return rowResult{}, err
		}
		dateAdded, err := row.dateValue("date_added", "date_added")
		if err != nil {
			return rowResult{}, err
		}
		if dateAdded.IsZero() {
			dateAdded = srv.today()
		}
		status := row.get("status")
		if !entity.VoucherLifecycle.Valid(status) {
			status = entity.VoucherStatusCirculation
		}

		repo := repoFactory.NewVoucherRepository()
		existing, err := repo.ExistingIDs(ctx, []string{id})
		if err != nil {
			return rowResult{}, err
		}
		if existing[id] {
			return skipped("voucher already exists"), nil
		}

		if err := repo.Create(ctx, &entity.Voucher{
			ID:        id,
			Refill:    refill,
			StartDate: start,
			EndDate:   end,
			Status:    status,
			DateAdded: dateAdded,
		}); err != nil {
			return rowResult{}, err
		}

		return added(), nil
	})
}

// Export writes every voucher matching the status and search filters
func (srv *voucherService) Export(ctx context.Context, format string, filter entity.VoucherFilter) (*usecase.Export, error) {
	filter.Page, filter.Limit = 0, 0

	var vouchers []*entity.Voucher
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewVoucherRepository()
		if err := srv.refreshAll(ctx, repo); err != nil {
			return err
		}

		var err error
		if vouchers, _, err = repo.List(ctx, filter); err != nil {
			return err
		}

		return srv.refresh(ctx, repo, vouchers...)
	})
	if err != nil {
		return nil, translate(err)
	}

	table := tabular.NewTable(voucherExportHeaders...)
	for _, v := range vouchers {
		table.Append(v.ID, strconv.Itoa(v.Refill), v.StartDate.String(), v.EndDate.String(), v.Status, v.DateAdded.String())
	}

	return srv.exporter.render(ctx, entity.NamespaceVouchers, format, table)
}
