package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"backoffice/config"
	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/domain/service"
	"backoffice/internal/errors"
	"backoffice/internal/infra/clock"
	"backoffice/internal/infra/persistence/database"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"
	mockService "backoffice/internal/mocks/service"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testNow is 10:00 on 2024-01-10 in Manila.
var testNow = time.Date(2024, 1, 10, 2, 0, 0, 0, time.UTC)

// serviceFixtures holds the shared dependencies of service tests: a migrated
// in-memory store, a fixed clock and a publisher that records every event.
type serviceFixtures struct {
	params    ServiceParams
	db        *gorm.DB
	publisher *mockService.MockEventPublisher

	mu     sync.Mutex
	events []*service.ChangeEvent
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.Path = ":memory:"
	cfg.Business.Timezone = "Asia/Manila"
	cfg.Status.Persist = true

	return cfg
}

func newServiceFixtures(t *testing.T) *serviceFixtures {
	t.Helper()

	cfg := newTestConfig()
	logger := newDiscardLogger()

	db, err := database.Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(context.Background(), db, logger))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	fx := &serviceFixtures{
		db:        db,
		publisher: mockService.NewMockEventPublisher(t),
	}
	fx.publisher.EXPECT().
		PublishChangeEvent(mock.Anything, mock.Anything).
		Run(func(_ context.Context, event *service.ChangeEvent) {
			fx.mu.Lock()
			defer fx.mu.Unlock()
			fx.events = append(fx.events, event)
		}).
		Return(nil).
		Maybe()

	fx.params = ServiceParams{
		TxManager: database.NewTransactionManager(db),
		Schemes:   sequence.NewSchemes(cfg.Location()),
		Clock:     clock.Fixed(testNow),
		Publisher: fx.publisher,
		Config:    cfg,
		Logger:    logger,
	}

	return fx
}

// at moves the fixed clock. Services built afterwards see the new time.
func (fx *serviceFixtures) at(now time.Time) *serviceFixtures {
	fx.params.Clock = clock.Fixed(now)

	return fx
}

func (fx *serviceFixtures) publishedEvents() []*service.ChangeEvent {
	fx.mu.Lock()
	defer fx.mu.Unlock()

	return append([]*service.ChangeEvent(nil), fx.events...)
}

// requireErrorCode asserts err is an AppError carrying code.
func requireErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	require.Error(t, err)
	appErr, ok := errors.AsType[domainerrors.AppError](err)
	require.True(t, ok, "expected an AppError, got %v", err)
	require.Equal(t, code, appErr.ErrorCode())
}

// exportedRows reads a CSV export back into import rows.
func exportedRows(t *testing.T, export *usecase.Export) usecase.Rows {
	t.Helper()

	table, err := tabular.Read(bytes.NewReader(export.Data), tabular.CSV)
	require.NoError(t, err)

	return table.Rows
}
