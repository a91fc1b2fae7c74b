package impl

import (
	"context"
	"log/slog"
	"time"

	"backoffice/config"
	deliverycontext "backoffice/internal/delivery/context"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/domain/service"

	"go.uber.org/fx"
)

// ServiceParams holds the dependencies every back-office service shares, injected by Fx.
type ServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Schemes   *sequence.Schemes
	Clock     service.Clock
	Publisher service.EventPublisher
	Archive   service.ExportArchive
	Config    *config.Config
	Logger    *slog.Logger
}

// base carries what the module services have in common.
type base struct {
	txManager repository.TransactionManager
	schemes   *sequence.Schemes
	clock     service.Clock
	zone      *time.Location
	recorder  *changeRecorder
	exporter  *exporter
	config    *config.Config
	logger    *slog.Logger
}

func newBase(params ServiceParams) base {
	zone := time.UTC
	if params.Config != nil {
		zone = params.Config.Location()
	}

	return base{
		txManager: params.TxManager,
		schemes:   params.Schemes,
		clock:     params.Clock,
		zone:      zone,
		recorder: &changeRecorder{
			clock:     params.Clock,
			publisher: params.Publisher,
			logger:    params.Logger,
		},
		exporter: &exporter{
			archive: params.Archive,
			clock:   params.Clock,
			logger:  params.Logger,
		},
		config: params.Config,
		logger: params.Logger,
	}
}

func (b *base) getLogger(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, b.logger)
}

// now is the current instant in the business timezone.
func (b *base) now() time.Time {
	return b.clock.Now().In(b.zone)
}

// today is the current calendar day in the business timezone.
func (b *base) today() entity.Date {
	return entity.DateOf(b.now())
}

// persistStatus reports whether recomputed statuses are written back.
func (b *base) persistStatus() bool {
	return b.config == nil || b.config.Status.Persist
}

// logs lists the change log of one entity in its own read transaction.
func (b *base) logs(ctx context.Context, namespace, entityID string) ([]*entity.ChangeLogEntry, error) {
	var entries []*entity.ChangeLogEntry
	err := b.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		entries, err = repoFactory.NewChangeLogRepository().ListByEntity(ctx, namespace, entityID)

		return err
	})
	if err != nil {
		return nil, translate(err)
	}

	return entries, nil
}
