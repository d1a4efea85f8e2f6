package service

import (
	"context"
	"fmt"

	"nutrack/internal/models"
	"nutrack/internal/repository"
)

type NutritionService struct {
	ledger repository.LedgerRepository
}

// RecordInput is one nutrient submission. Required fields are pointers so an
// absent field is distinguishable from an explicit zero; Date defaults to the
// current UTC day when unset.
type RecordInput struct {
	UserID   uint
	Date     models.Day
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fats     *float64
	Sodium   *float64
	Sugar    *float64
}

func NewNutritionService(ledger repository.LedgerRepository) *NutritionService {
	return &NutritionService{ledger: ledger}
}

// Record accumulates one submission into the user's entry for the day.
// Repeated calls with the same payload add again each time: this is
// log-a-meal, not set-the-day's-total. Returns true when the submission
// created the day's entry.
func (s *NutritionService) Record(ctx context.Context, in RecordInput) (bool, error) {
	amounts, err := in.amounts()
	if err != nil {
		return false, err
	}

	day := in.Date
	if day.IsZero() {
		day = models.Today()
	}

	return s.ledger.Upsert(ctx, in.UserID, day, amounts)
}

// GetEntries returns the user's full ledger in date order.
func (s *NutritionService) GetEntries(ctx context.Context, userID uint) ([]models.DailyEntry, error) {
	return s.ledger.ListByUser(ctx, userID)
}

func (in RecordInput) amounts() (models.NutrientAmounts, error) {
	required := []struct {
		name  string
		value *float64
	}{
		{"calories", in.Calories},
		{"protein", in.Protein},
		{"carbs", in.Carbs},
		{"fats", in.Fats},
	}
	for _, f := range required {
		if f.value == nil {
			return models.NutrientAmounts{}, models.NewValidationError(
				fmt.Sprintf("Field %q is required and must be numeric", f.name))
		}
	}

	amounts := models.NutrientAmounts{
		Calories: *in.Calories,
		Protein:  *in.Protein,
		Carbs:    *in.Carbs,
		Fats:     *in.Fats,
	}
	if in.Sodium != nil {
		amounts.Sodium = *in.Sodium
	}
	if in.Sugar != nil {
		amounts.Sugar = *in.Sugar
	}

	// Accumulation only ever adds; a negative submission could silently erase
	// history, so it is rejected outright.
	for _, v := range []float64{amounts.Calories, amounts.Protein, amounts.Carbs, amounts.Fats, amounts.Sodium, amounts.Sugar} {
		if v < 0 {
			return models.NutrientAmounts{}, models.NewValidationError("Nutrient amounts must not be negative")
		}
	}

	return amounts, nil
}
