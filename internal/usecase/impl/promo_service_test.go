package impl

import (
	"context"
	"testing"
	"time"

	"backoffice/internal/domain/entity"
	"backoffice/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromoInput(code, start, end string) *usecase.PromoInput {
	return &usecase.PromoInput{
		Code:        code,
		Type:        "Discount",
		RuleSummary: "10% off",
		StartDate:   start,
		EndDate:     end,
	}
}

func intPtr(n int) *int {
	return &n
}

func TestPromoService_Save_DerivesStatus(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewPromoService(fx.params)

	tests := []struct {
		code   string
		start  string
		end    string
		status string
		want   string
	}{
		{code: "RUNNING", start: "2024-01-01", end: "2024-01-31", want: entity.PromoStatusActive},
		{code: "LATER", start: "2024-02-01", want: entity.PromoStatusScheduled},
		{code: "OVER", start: "2023-12-01", end: "2024-01-09", want: entity.PromoStatusExpired},
		{code: "ENDS-TODAY", start: "2024-01-01", end: "2024-01-10", want: entity.PromoStatusActive},
		{code: "USED", start: "2024-01-01", status: entity.PromoStatusUsed, want: entity.PromoStatusUsed},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			input := newPromoInput(tt.code, tt.start, tt.end)
			input.Status = tt.status
			_, err := svc.Save(ctx, input)
			require.NoError(t, err)

			promo, err := svc.Get(ctx, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.want, promo.Status)
		})
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &entity.PromoStats{Active: 2, Used: 1, Expired: 1}, stats)

	scheduled, err := svc.List(ctx, entity.PromoFilter{Status: entity.PromoStatusScheduled})
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "LATER", scheduled[0].Code)
}

func TestPromoService_Save_Validation(t *testing.T) {
	fx := newServiceFixtures(t)
	svc := NewPromoService(fx.params)

	_, err := svc.Save(context.Background(), newPromoInput("BAD", "2024-01-10", "2024-01-01"))
	requireErrorCode(t, err, "VALIDATION_FAILED")

	input := newPromoInput("BAD", "2024-01-10", "")
	input.Status = "Paused"
	_, err = svc.Save(context.Background(), input)
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestPromoService_StatusFollowsTheClock(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)

	_, err := NewPromoService(fx.params).Save(ctx, newPromoInput("JAN", "2024-01-10", "2024-01-20"))
	require.NoError(t, err)

	later := NewPromoService(fx.at(time.Date(2024, 1, 25, 2, 0, 0, 0, time.UTC)).params)
	promo, err := later.Get(ctx, "JAN")
	require.NoError(t, err)
	assert.Equal(t, entity.PromoStatusExpired, promo.Status)
}

func TestPromoService_Update(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewPromoService(fx.params)

	_, err := svc.Save(ctx, newPromoInput("SUMMER", "2024-01-01", ""))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "SUMMER", &usecase.PromoUpdate{
		StartDate:      "2024-03-01",
		MaxRedemptions: intPtr(5),
	})
	require.NoError(t, err)

	promo, err := svc.Get(ctx, "SUMMER")
	require.NoError(t, err)
	assert.Equal(t, entity.PromoStatusScheduled, promo.Status)

	logs, err := svc.Logs(ctx, "SUMMER")
	require.NoError(t, err)
	fields := make([]string, 0, len(logs))
	for _, entry := range logs {
		fields = append(fields, entry.Field)
	}
	assert.ElementsMatch(t, []string{"start_date", "max_redemptions", "status"}, fields)

	_, err = svc.Update(ctx, "WINTER", &usecase.PromoUpdate{StartDate: "2024-03-01"})
	requireErrorCode(t, err, "PROMO_NOT_FOUND")
}

func TestPromoService_RecordRedemption(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewPromoService(fx.params)

	input := newPromoInput("TWICE", "2024-01-01", "")
	input.MaxRedemptions = intPtr(2)
	_, err := svc.Save(ctx, input)
	require.NoError(t, err)

	result, err := svc.RecordRedemption(ctx, "TWICE", &usecase.RedemptionInput{CustomerID: "C-1", OrderID: "O-1"})
	require.NoError(t, err)
	assert.Equal(t, "Redemption recorded", result.Message)

	result, err = svc.RecordRedemption(ctx, "TWICE", &usecase.RedemptionInput{CustomerID: "C-1", OrderID: "O-2"})
	require.NoError(t, err)
	assert.Equal(t, "Promo already redeemed by customer", result.Message)

	_, err = svc.RecordRedemption(ctx, "TWICE", &usecase.RedemptionInput{CustomerID: "C-2"})
	require.NoError(t, err)

	_, err = svc.RecordRedemption(ctx, "TWICE", &usecase.RedemptionInput{CustomerID: "C-3"})
	requireErrorCode(t, err, "REDEMPTION_LIMIT_REACHED")

	promo, err := svc.Get(ctx, "TWICE")
	require.NoError(t, err)
	assert.Equal(t, 2, promo.Redemptions)

	_, err = svc.Save(ctx, newPromoInput("SOON", "2024-06-01", ""))
	require.NoError(t, err)
	_, err = svc.RecordRedemption(ctx, "SOON", &usecase.RedemptionInput{CustomerID: "C-1"})
	requireErrorCode(t, err, "PROMO_NOT_REDEEMABLE")
}

func TestPromoService_Import(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewPromoService(fx.params)

	_, err := svc.Save(ctx, newPromoInput("EXISTING", "2024-01-01", ""))
	require.NoError(t, err)

	summary, err := svc.Import(ctx, usecase.Rows{
		{"code": "EXISTING", "type": "Discount", "rule_summary": "x", "start_date": "2024-01-01", "status": "Active"},
		{"code": "NEW", "type": "Discount", "rule_summary": "x", "start_date": "2024-01-01", "status": "Active", "max_redemptions": "3"},
		{"code": "PARTIAL", "type": "Discount"},
		{"code": "BROKEN", "type": "Discount", "rule_summary": "x", "start_date": "2024-01-01", "status": "Active", "max_redemptions": "lots"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 2, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)

	promo, err := svc.Get(ctx, "NEW")
	require.NoError(t, err)
	require.NotNil(t, promo.MaxRedemptions)
	assert.Equal(t, 3, *promo.MaxRedemptions)
}

func TestPromoService_Import_KeepsRedemptions(t *testing.T) {
	ctx := context.Background()
	source := NewPromoService(newServiceFixtures(t).params)

	input := newPromoInput("P1", "2024-01-01", "")
	input.MaxRedemptions = intPtr(1)
	_, err := source.Save(ctx, input)
	require.NoError(t, err)
	_, err = source.RecordRedemption(ctx, "P1", &usecase.RedemptionInput{CustomerID: "C-1"})
	require.NoError(t, err)
	export, err := source.Export(ctx, "csv")
	require.NoError(t, err)
	rows := exportedRows(t, export)
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0]["redemptions"])

	svc := NewPromoService(newServiceFixtures(t).params)
	broken := map[string]string{}
	for k, v := range rows[0] {
		broken[k] = v
	}
	broken["code"] = "P2"
	broken["redemptions"] = "once"

	summary, err := svc.Import(ctx, append(rows, broken))
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Added)
	assert.Equal(t, 1, summary.Failed)

	promo, err := svc.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 1, promo.Redemptions)

	_, err = svc.RecordRedemption(ctx, "P1", &usecase.RedemptionInput{CustomerID: "C-2"})
	requireErrorCode(t, err, "REDEMPTION_LIMIT_REACHED")
}
