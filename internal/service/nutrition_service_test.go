package service

import (
	"context"
	"testing"

	"nutrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerRepoStub struct {
	upsertFn     func(context.Context, uint, models.Day, models.NutrientAmounts) (bool, error)
	listByUserFn func(context.Context, uint) ([]models.DailyEntry, error)
}

func (s *ledgerRepoStub) Upsert(ctx context.Context, userID uint, day models.Day, amounts models.NutrientAmounts) (bool, error) {
	return s.upsertFn(ctx, userID, day, amounts)
}
func (s *ledgerRepoStub) ListByUser(ctx context.Context, userID uint) ([]models.DailyEntry, error) {
	return s.listByUserFn(ctx, userID)
}

func noopLedgerRepo() *ledgerRepoStub {
	return &ledgerRepoStub{
		upsertFn: func(context.Context, uint, models.Day, models.NutrientAmounts) (bool, error) {
			return true, nil
		},
		listByUserFn: func(context.Context, uint) ([]models.DailyEntry, error) { return nil, nil },
	}
}

func TestNutritionService_Record(t *testing.T) {
	ledger := noopLedgerRepo()
	var gotDay models.Day
	var gotAmounts models.NutrientAmounts
	ledger.upsertFn = func(_ context.Context, userID uint, day models.Day, amounts models.NutrientAmounts) (bool, error) {
		assert.Equal(t, uint(1), userID)
		gotDay = day
		gotAmounts = amounts
		return true, nil
	}
	svc := NewNutritionService(ledger)

	created, err := svc.Record(context.Background(), RecordInput{
		UserID:   1,
		Date:     models.NewDay(2026, 9, 1),
		Calories: fptr(500),
		Protein:  fptr(30),
		Carbs:    fptr(60),
		Fats:     fptr(20),
		Sodium:   fptr(400),
		Sugar:    fptr(12),
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.NewDay(2026, 9, 1), gotDay)
	assert.Equal(t, models.NutrientAmounts{
		Calories: 500, Protein: 30, Carbs: 60, Fats: 20, Sodium: 400, Sugar: 12,
	}, gotAmounts)
}

func TestNutritionService_RecordDefaultsToToday(t *testing.T) {
	ledger := noopLedgerRepo()
	var gotDay models.Day
	ledger.upsertFn = func(_ context.Context, _ uint, day models.Day, _ models.NutrientAmounts) (bool, error) {
		gotDay = day
		return false, nil
	}
	svc := NewNutritionService(ledger)

	created, err := svc.Record(context.Background(), RecordInput{
		UserID:   1,
		Calories: fptr(500),
		Protein:  fptr(30),
		Carbs:    fptr(60),
		Fats:     fptr(20),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, models.Today(), gotDay)
}

func TestNutritionService_RecordOptionalFieldsDefaultToZero(t *testing.T) {
	ledger := noopLedgerRepo()
	var gotAmounts models.NutrientAmounts
	ledger.upsertFn = func(_ context.Context, _ uint, _ models.Day, amounts models.NutrientAmounts) (bool, error) {
		gotAmounts = amounts
		return true, nil
	}
	svc := NewNutritionService(ledger)

	_, err := svc.Record(context.Background(), RecordInput{
		UserID:   1,
		Date:     models.NewDay(2026, 9, 1),
		Calories: fptr(500),
		Protein:  fptr(30),
		Carbs:    fptr(60),
		Fats:     fptr(20),
	})
	require.NoError(t, err)
	assert.Zero(t, gotAmounts.Sodium)
	assert.Zero(t, gotAmounts.Sugar)
}

func TestNutritionService_RecordValidation(t *testing.T) {
	valid := func() RecordInput {
		return RecordInput{
			UserID:   1,
			Date:     models.NewDay(2026, 9, 1),
			Calories: fptr(500),
			Protein:  fptr(30),
			Carbs:    fptr(60),
			Fats:     fptr(20),
		}
	}

	tests := []struct {
		name   string
		mutate func(*RecordInput)
	}{
		{"missing calories", func(in *RecordInput) { in.Calories = nil }},
		{"missing protein", func(in *RecordInput) { in.Protein = nil }},
		{"missing carbs", func(in *RecordInput) { in.Carbs = nil }},
		{"missing fats", func(in *RecordInput) { in.Fats = nil }},
		{"negative calories", func(in *RecordInput) { in.Calories = fptr(-100) }},
		{"negative sodium", func(in *RecordInput) { in.Sodium = fptr(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := noopLedgerRepo()
			ledger.upsertFn = func(context.Context, uint, models.Day, models.NutrientAmounts) (bool, error) {
				t.Fatal("upsert should not be called on invalid input")
				return false, nil
			}
			svc := NewNutritionService(ledger)

			in := valid()
			tt.mutate(&in)
			_, err := svc.Record(context.Background(), in)
			require.Error(t, err)

			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestNutritionService_RecordZeroAmountsAllowed(t *testing.T) {
	svc := NewNutritionService(noopLedgerRepo())

	_, err := svc.Record(context.Background(), RecordInput{
		UserID:   1,
		Date:     models.NewDay(2026, 9, 1),
		Calories: fptr(0),
		Protein:  fptr(0),
		Carbs:    fptr(0),
		Fats:     fptr(0),
	})
	assert.NoError(t, err, "explicit zeros are valid submissions")
}
