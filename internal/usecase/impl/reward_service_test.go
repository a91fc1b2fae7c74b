package impl

import (
	"bytes"
	"context"
	"testing"

	"backoffice/internal/domain/entity"
	"backoffice/internal/infra/tabular"
	"backoffice/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewardService_SaveRule(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewRewardService(fx.params)

	minSpend := decimal.RequireFromString("500")
	generated, err := svc.SaveRule(ctx, &usecase.RewardRuleInput{
		Rule:      "1 point per 100 pesos",
		StartDate: "2024-01-01",
		MinSpend:  &minSpend,
		Points:    1,
	})
	require.NoError(t, err)
	assert.Equal(t, "RW-20240110-0001", generated.ID)

	rule, err := svc.GetRule(ctx, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, rule.Status)
	require.NotNil(t, rule.MinSpend)
	assert.True(t, minSpend.Equal(*rule.MinSpend))

	t.Run("saving an existing id replaces the rule", func(t *testing.T) {
		_, err := svc.SaveRule(ctx, &usecase.RewardRuleInput{
			ID:        generated.ID,
			Rule:      "2 points per 100 pesos",
			StartDate: "2024-01-01",
			Status:    "Inactive",
		})
		require.NoError(t, err)

		rules, err := svc.ListRules(ctx)
		require.NoError(t, err)
		require.Len(t, rules, 1)
		assert.Equal(t, "2 points per 100 pesos", rules[0].Rule)
		assert.Equal(t, "Inactive", rules[0].Status)
	})

	t.Run("caller supplied ids are kept", func(t *testing.T) {
		result, err := svc.SaveRule(ctx, &usecase.RewardRuleInput{ID: "VIP-BONUS", Rule: "Double points", StartDate: "2024-02-01"})
		require.NoError(t, err)
		assert.Equal(t, "VIP-BONUS", result.ID)
	})

	t.Run("rule is required", func(t *testing.T) {
		_, err := svc.SaveRule(ctx, &usecase.RewardRuleInput{StartDate: "2024-01-01"})
		requireErrorCode(t, err, "VALIDATION_FAILED")
	})
}

func TestRewardService_UpdateRule(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewRewardService(fx.params)

	saved, err := svc.SaveRule(ctx, &usecase.RewardRuleInput{Rule: "Birthday bonus", StartDate: "2024-01-01"})
	require.NoError(t, err)

	_, err = svc.UpdateRule(ctx, saved.ID, &usecase.RewardRuleUpdate{
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
		Status:    entity.StatusActive,
		Note:      "Extended",
	})
	require.NoError(t, err)

	logs, err := svc.Logs(ctx, saved.ID)
	require.NoError(t, err)
	fields := make([]string, 0, len(logs))
	for _, entry := range logs {
		fields = append(fields, entry.Field)
	}
	assert.ElementsMatch(t, []string{"end_date", "note"}, fields)

	_, err = svc.UpdateRule(ctx, "RW-20240110-0099", &usecase.RewardRuleUpdate{StartDate: "2024-01-01", Status: "Active"})
	requireErrorCode(t, err, "REWARD_RULE_NOT_FOUND")
}

func TestRewardService_ConversionRates(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewRewardService(fx.params)

	_, err := svc.LatestConversionRate(ctx)
	requireErrorCode(t, err, "NOT_FOUND")

	_, err = svc.SaveConversionRate(ctx, &usecase.ConversionRateInput{Points: 10, Peso: decimal.RequireFromString("1"), Date: "2024-01-05"})
	require.NoError(t, err)
	_, err = svc.SaveConversionRate(ctx, &usecase.ConversionRateInput{Points: 100, Peso: decimal.RequireFromString("25")})
	require.NoError(t, err)
	_, err = svc.SaveConversionRate(ctx, &usecase.ConversionRateInput{Points: 1, Peso: decimal.RequireFromString("9"), Date: "2024-01-01"})
	require.NoError(t, err)

	rate, err := svc.LatestConversionRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 100, rate.Points)
	assert.Equal(t, entity.Date("2024-01-10"), rate.Date)
	assert.True(t, decimal.RequireFromString("0.25").Equal(rate.PesoPerPoint()))

	_, err = svc.SaveConversionRate(ctx, &usecase.ConversionRateInput{Points: 10, Peso: decimal.Zero})
	requireErrorCode(t, err, "VALIDATION_FAILED")
	_, err = svc.SaveConversionRate(ctx, &usecase.ConversionRateInput{Points: 0, Peso: decimal.RequireFromString("1")})
	requireErrorCode(t, err, "VALIDATION_FAILED")
}

func TestRewardService_Export(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixtures(t)
	svc := NewRewardService(fx.params)

	minSpend := decimal.RequireFromString("250")
	saved, err := svc.SaveRule(ctx, &usecase.RewardRuleInput{Rule: "Spend more", StartDate: "2024-01-01", MinSpend: &minSpend, Points: 5})
	require.NoError(t, err)

	export, err := svc.Export(ctx, "csv")
	require.NoError(t, err)

	table, err := tabular.Read(bytes.NewReader(export.Data), tabular.CSV)
	require.NoError(t, err)
	assert.Equal(t, rewardExportHeaders, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, saved.ID, table.Rows[0]["id"])
	assert.Equal(t, "250.00", table.Rows[0]["min_spend"])
	assert.Equal(t, "5", table.Rows[0]["points"])
}
