package service

import (
	"context"

	"nutrack/internal/models"
	"nutrack/internal/repository"
)

// Unit conversion factors for biometrics submitted in imperial units.
const (
	CmPerInch = 2.54
	KgPerLb   = 0.453592
)

// Recommended daily sodium (mg) and sugar (g) are fixed guideline values.
const (
	SodiumTargetMg    = 2300.0
	SugarTargetMale   = 36.0
	SugarTargetFemale = 25.0
)

// activityMultipliers scales BMR into TDEE by self-reported exercise level.
var activityMultipliers = map[models.ActivityLevel]float64{
	models.ActivitySedentary: 1.2,
	models.ActivityLight:     1.375,
	models.ActivityModerate:  1.55,
	models.ActivityVery:      1.725,
	models.ActivitySuper:     1.9,
}

// Targets are the recommended daily intake values derived from TDEE.
type Targets struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`
}

// SeriesPoint is one day of the trailing-week series; days without an entry
// report zero for every nutrient.
type SeriesPoint struct {
	Date     models.Day `json:"date"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Fats     float64    `json:"fats"`
	Sodium   float64    `json:"sodium"`
	Sugar    float64    `json:"sugar"`
}

// Summary is the derived-metrics view over a user's profile and ledger.
type Summary struct {
	BMR     float64       `json:"bmr"`
	TDEE    float64       `json:"tdee"`
	Targets Targets       `json:"targets"`
	Series  []SeriesPoint `json:"series"`
}

// BMR computes basal metabolic rate with the Mifflin-St Jeor equation.
// Weight in kg, height in cm.
func BMR(weightKg, heightCm float64, age int, gender string) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == models.GenderMale {
		return base + 5
	}
	return base - 161
}

// ActivityMultiplier returns the TDEE scaling factor for the level. Unset or
// unrecognized levels resolve to the sedentary multiplier rather than
// inflating the estimate.
func ActivityMultiplier(level models.ActivityLevel) float64 {
	if m, ok := activityMultipliers[level]; ok {
		return m
	}
	return activityMultipliers[models.ActivitySedentary]
}

// RecommendedTargets derives daily intake targets from TDEE and body weight.
// Carbs assume half of energy at 4 kcal/g; fats a quarter at 9 kcal/g.
func RecommendedTargets(tdee, weightKg float64, gender string) Targets {
	sugar := SugarTargetFemale
	if gender == models.GenderMale {
		sugar = SugarTargetMale
	}
	return Targets{
		Calories: tdee,
		Protein:  weightKg * 1.8,
		Carbs:    tdee * 0.5 / 4,
		Fats:     tdee * 0.25 / 9,
		Sodium:   SodiumTargetMg,
		Sugar:    sugar,
	}
}

// WeeklySeries aligns the ledger to the trailing 7 calendar days ending at
// today, zero-filling days without an entry.
func WeeklySeries(entries []models.DailyEntry, today models.Day) []SeriesPoint {
	byDay := make(map[models.Day]models.DailyEntry, len(entries))
	for _, e := range entries {
		byDay[e.Date] = e
	}

	series := make([]SeriesPoint, 0, 7)
	for offset := -6; offset <= 0; offset++ {
		day := today.AddDays(offset)
		point := SeriesPoint{Date: day}
		if e, ok := byDay[day]; ok {
			point.Calories = e.Calories
			point.Protein = e.Protein
			point.Carbs = e.Carbs
			point.Fats = e.Fats
			point.Sodium = e.Sodium
			point.Sugar = e.Sugar
		}
		series = append(series, point)
	}
	return series
}

// ReportService builds derived-metric summaries. It holds no state of its
// own; everything is computed from the fetched user and ledger.
type ReportService struct {
	userRepo repository.UserRepository
	ledger   repository.LedgerRepository
}

func NewReportService(userRepo repository.UserRepository, ledger repository.LedgerRepository) *ReportService {
	return &ReportService{userRepo: userRepo, ledger: ledger}
}

// BuildSummary computes the summary for a user as of today. The profile must
// carry complete biometrics; otherwise a ValidationError is returned.
func (s *ReportService) BuildSummary(ctx context.Context, userID uint, today models.Day) (*Summary, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasCompleteBiometrics() {
		return nil, models.NewValidationError("Profile is incomplete: height, weight, age and gender are required")
	}

	entries, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return Summarize(user, entries, today), nil
}

// Summarize is the pure computation behind BuildSummary.
func Summarize(user *models.User, entries []models.DailyEntry, today models.Day) *Summary {
	weightKg := *user.WeightLb * KgPerLb
	heightCm := *user.HeightIn * CmPerInch

	bmr := BMR(weightKg, heightCm, *user.Age, user.Gender)
	tdee := bmr * ActivityMultiplier(user.ActivityLevel)

	return &Summary{
		BMR:     bmr,
		TDEE:    tdee,
		Targets: RecommendedTargets(tdee, weightKg, user.Gender),
		Series:  WeeklySeries(entries, today),
	}
}
