package database

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"backoffice/config"
	"backoffice/internal/domain/entity"
	"backoffice/internal/domain/repository"
	"backoffice/internal/domain/sequence"
	"backoffice/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.Path = memoryPath
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := Open(cfg, logger)
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db, logger))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, Migrate(context.Background(), db, nil))

	var versions []int
	require.NoError(t, db.Model(&model.SchemaMigrationModel{}).Order("version").Pluck("version", &versions).Error)
	assert.Equal(t, []int{1, 2, 3}, versions)
	assert.True(t, db.Migrator().HasColumn(&model.ItemModel{}, "Status"))
}

func TestSequenceRepository_Next(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSequenceRepository(db)
	key := sequence.Key{Scope: "suppliers", Prefix: "S-20240110-", Width: 4}

	t.Run("sequential calls count up from one", func(t *testing.T) {
		for i, want := range []string{"S-20240110-0001", "S-20240110-0002", "S-20240110-0003"} {
			id, err := repo.Next(ctx, key)
			require.NoError(t, err, "call %d", i)
			assert.Equal(t, want, id)
		}
	})

	t.Run("buckets are independent", func(t *testing.T) {
		id, err := repo.Next(ctx, sequence.Key{Scope: "suppliers", Prefix: "S-20240111-", Width: 4})
		require.NoError(t, err)
		assert.Equal(t, "S-20240111-0001", id)
	})

	t.Run("existing rows offset the counter", func(t *testing.T) {
		require.NoError(t, db.Create(&model.SupplierModel{ID: "S-20240110-0042", Name: "Acme", Phone: "1"}).Error)

		id, err := repo.Next(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "S-20240110-0043", id)
	})

	t.Run("deleted rows are not reused", func(t *testing.T) {
		require.NoError(t, db.Where("id = ?", "S-20240110-0042").Delete(&model.SupplierModel{}).Error)

		id, err := repo.Next(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "S-20240110-0044", id)
	})

	t.Run("peek does not reserve", func(t *testing.T) {
		peeked, err := repo.Peek(ctx, key)
		require.NoError(t, err)
		again, err := repo.Peek(ctx, key)
		require.NoError(t, err)
		next, err := repo.Next(ctx, key)
		require.NoError(t, err)

		assert.Equal(t, peeked, again)
		assert.Equal(t, peeked, next)
	})
}

func TestSequenceRepository_Exhausted(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.ItemGroupModel{ID: "AB", Name: "Drinks"}).Error)
	require.NoError(t, db.Create(&model.ItemModel{ID: "AB9999", GroupID: "AB", Name: "Last", Status: entity.ItemStatusActive}).Error)

	_, err := NewSequenceRepository(db).Next(ctx, sequence.Key{Scope: "items", Prefix: "AB", Width: 4})
	assert.ErrorIs(t, err, sequence.ErrExhausted)
}

func TestSequenceRepository_UnknownScope(t *testing.T) {
	_, err := NewSequenceRepository(newTestDB(t)).Next(context.Background(), sequence.Key{Scope: "nope", Width: 4})
	assert.Error(t, err)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	tm := NewTransactionManager(db)
	key := sequence.Key{Scope: "customers", Prefix: "C-20240110-", Width: 4}

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.NewSequenceRepository().Next(ctx, key); err != nil {
			return err
		}
		return repository.ErrCustomerNotFound
	})
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)

	id, err := NewSequenceRepository(db).Next(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "C-20240110-0001", id)
}

func TestChangeLogRepository_ListByEntity(t *testing.T) {
	ctx := context.Background()
	repo := NewChangeLogRepository(newTestDB(t))
	at := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	first := []*entity.ChangeLogEntry{
		{Namespace: entity.NamespaceCustomers, EntityID: "C-1", Subject: "customer", SubjectID: "C-1", Field: "phone", From: "1", To: "2", Timestamp: at},
		{Namespace: entity.NamespaceCustomers, EntityID: "C-1", Subject: "customer", SubjectID: "C-1", Field: "email", From: "", To: "a@x", Timestamp: at},
	}
	later := []*entity.ChangeLogEntry{
		{Namespace: entity.NamespaceCustomers, EntityID: "C-1", Subject: "customer", SubjectID: "C-1", Field: "phone", From: "2", To: "3", Timestamp: at.Add(time.Hour)},
	}
	other := []*entity.ChangeLogEntry{
		{Namespace: entity.NamespaceBillers, EntityID: "C-1", Subject: "biller", SubjectID: "C-1", Field: "phone", From: "x", To: "y", Timestamp: at},
	}
	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, later))
	require.NoError(t, repo.Append(ctx, other))
	require.NoError(t, repo.Append(ctx, nil))
	assert.NotZero(t, first[0].ID)

	entries, err := repo.ListByEntity(ctx, entity.NamespaceCustomers, "C-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "3", entries[0].To)
	assert.Equal(t, "email", entries[1].Field, "same timestamp falls back to insertion order")
	assert.Equal(t, "phone", entries[2].Field)
}

func TestItemRepository_FindDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepository(newTestDB(t))
	require.NoError(t, repo.CreateGroup(ctx, &entity.ItemGroup{ID: "AB", Name: "Drinks"}))
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "AB0001", GroupID: "AB", Name: "Cola", Barcode: "123", UnitPrice: decimal.RequireFromString("12.50"), Status: entity.ItemStatusActive}))
	require.NoError(t, repo.Create(ctx, &entity.Item{ID: "AB0002", GroupID: "AB", Name: "Water", Status: entity.ItemStatusActive}))

	_, err := repo.FindDuplicate(ctx, "AB", "Cola", "123")
	assert.NoError(t, err)
	_, err = repo.FindDuplicate(ctx, "AB", "Cola", "999")
	assert.ErrorIs(t, err, repository.ErrItemNotFound)
	_, err = repo.FindDuplicate(ctx, "AB", "Water", "555")
	assert.NoError(t, err, "an item without barcode matches any barcode")

	item, err := repo.FindByID(ctx, "AB0001")
	require.NoError(t, err)
	assert.Equal(t, "Drinks", item.GroupName)
	assert.True(t, decimal.RequireFromString("12.5").Equal(item.UnitPrice))

	items, err := repo.List(ctx, entity.ItemFilter{Search: "12", Status: "All"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AB0001", items[0].ID)

	count, err := repo.CountItemsInGroup(ctx, "AB")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestSupplierRepository_BlankFieldsAreNull(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSupplierRepository(db)
	require.NoError(t, repo.Create(ctx, &entity.Supplier{ID: "S-20240110-0001", Name: "Acme", Phone: "1", Email: "  "}))

	var stored model.SupplierModel
	require.NoError(t, db.First(&stored, "id = ?", "S-20240110-0001").Error)
	assert.Nil(t, stored.Email)
	assert.Nil(t, stored.Notes)

	_, err := repo.FindByNameAndEmail(ctx, "Acme", "new@acme.test")
	assert.NoError(t, err, "a supplier without email matches any email")
	_, err = repo.FindByNameAndEmail(ctx, "Other", "")
	assert.ErrorIs(t, err, repository.ErrSupplierNotFound)
}

func TestPromoRepository_SaveKeepsRedemptions(t *testing.T) {
	ctx := context.Background()
	repo := NewPromoRepository(newTestDB(t))
	promo := &entity.Promo{Code: "SAVE10", Type: "Percent", RuleSummary: "10% off", StartDate: "2024-01-01", Status: entity.PromoStatusActive}
	require.NoError(t, repo.Save(ctx, promo))
	require.NoError(t, repo.IncrementRedemptions(ctx, "SAVE10"))

	promo.RuleSummary = "15% off"
	require.NoError(t, repo.Save(ctx, promo))

	stored, err := repo.FindByCode(ctx, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, "15% off", stored.RuleSummary)
	assert.Equal(t, 1, stored.Redemptions)
	assert.True(t, stored.EndDate.IsZero())

	redemption := &entity.PromoRedemption{Code: "SAVE10", CustomerID: "C-1", RedeemedAt: time.Now()}
	require.NoError(t, repo.CreateRedemption(ctx, redemption))
	err = repo.CreateRedemption(ctx, &entity.PromoRedemption{Code: "SAVE10", CustomerID: "C-1", RedeemedAt: time.Now()})
	assert.ErrorIs(t, err, repository.ErrDuplicateRedemption)
}

func TestVoucherRepository_ListPages(t *testing.T) {
	ctx := context.Background()
	repo := NewVoucherRepository(newTestDB(t))
	for _, id := range []string{"0000000001", "0000000002", "0000000003"} {
		require.NoError(t, repo.Create(ctx, &entity.Voucher{ID: id, Refill: 100, StartDate: "2024-01-01", Status: entity.VoucherStatusCirculation, DateAdded: "2024-01-01"}))
	}
	require.NoError(t, repo.UpdateStatus(ctx, "0000000003", entity.VoucherStatusUsed))

	page, total, err := repo.List(ctx, entity.VoucherFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "0000000003", page[0].ID)

	existing, err := repo.ExistingIDs(ctx, []string{"0000000002", "0000000009"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"0000000002": true}, existing)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[entity.VoucherStatusCirculation])
	assert.Equal(t, 1, counts[entity.VoucherStatusUsed])

	err = repo.Create(ctx, &entity.Voucher{ID: "0000000001", Refill: 5, StartDate: "2024-01-01", Status: entity.VoucherStatusCirculation, DateAdded: "2024-01-01"})
	assert.ErrorIs(t, err, repository.ErrDuplicateVoucher)
}

func TestLedgerRepository_EarnedTotals(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(newTestDB(t))
	value := decimal.RequireFromString("5.00")
	at := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entity.LedgerEntry{ID: "RL-20240110-0001", Date: at, CustomerID: "C-1", Type: entity.LedgerEarned, Points: 100, EquivalentValue: &value}))
	require.NoError(t, repo.Create(ctx, &entity.LedgerEntry{ID: "RL-20240110-0002", Date: at.Add(time.Hour), CustomerID: "C-1", Type: entity.LedgerRedeemed, Points: 40}))

	totals, err := repo.EarnedTotals(ctx, "C-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), totals.Points)
	assert.True(t, value.Equal(totals.Value))

	none, err := repo.EarnedTotals(ctx, "C-2")
	require.NoError(t, err)
	assert.Zero(t, none.Points)

	entries, err := repo.List(ctx, entity.LedgerFilter{CustomerID: "C-1", From: at.Add(30 * time.Minute)})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.LedgerRedeemed, entries[0].Type)
}

func TestRewardRepository_LatestConversionRate(t *testing.T) {
	ctx := context.Background()
	repo := NewRewardRepository(newTestDB(t))

	_, err := repo.LatestConversionRate(ctx)
	assert.ErrorIs(t, err, repository.ErrConversionRateNotFound)

	require.NoError(t, repo.CreateConversionRate(ctx, &entity.ConversionRate{Points: 100, Peso: decimal.NewFromInt(1), Date: "2024-02-01"}))
	require.NoError(t, repo.CreateConversionRate(ctx, &entity.ConversionRate{Points: 10, Peso: decimal.NewFromInt(1), Date: "2024-01-01"}))
	require.NoError(t, repo.CreateConversionRate(ctx, &entity.ConversionRate{Points: 50, Peso: decimal.NewFromInt(1), Date: "2024-02-01"}))

	rate, err := repo.LatestConversionRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, rate.Points)
}
