package repository

import (
	"context"

	"nutrack/internal/cache"
	"nutrack/internal/models"
	"nutrack/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository persists the per-user, per-day nutrient ledger.
type LedgerRepository interface {
	// Upsert accumulates amounts into the user's entry for the given day,
	// creating the entry on first submission. It reports whether the entry
	// was created (true) or an existing one was updated (false).
	Upsert(ctx context.Context, userID uint, day models.Day, amounts models.NutrientAmounts) (bool, error)
	// ListByUser returns every ledger entry for the user in date order.
	ListByUser(ctx context.Context, userID uint) ([]models.DailyEntry, error)
}

type ledgerRepository struct {
	db      *gorm.DB
	metrics *observability.DatabaseMetrics
}

// NewLedgerRepository returns a new LedgerRepository implementation.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db, metrics: observability.NewDatabaseMetrics(db)}
}

// pgUpsert performs the accumulate-or-insert in a single statement so that
// concurrent submissions for the same (user, day) can never lose an increment
// or produce duplicate rows. xmax = 0 holds only for freshly inserted rows,
// which distinguishes created from updated without a second round trip.
const pgUpsert = `
INSERT INTO daily_entries
	(user_id, entry_date, calories, protein, carbs, fats, sodium, sugar, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())
ON CONFLICT (user_id, entry_date) DO UPDATE SET
	calories   = daily_entries.calories + EXCLUDED.calories,
	protein    = daily_entries.protein  + EXCLUDED.protein,
	carbs      = daily_entries.carbs    + EXCLUDED.carbs,
	fats       = daily_entries.fats     + EXCLUDED.fats,
	sodium     = daily_entries.sodium   + EXCLUDED.sodium,
	sugar      = daily_entries.sugar    + EXCLUDED.sugar,
	updated_at = NOW()
RETURNING (xmax = 0) AS created`

func (r *ledgerRepository) Upsert(ctx context.Context, userID uint, day models.Day, amounts models.NutrientAmounts) (bool, error) {
	defer r.metrics.TrackQuery("upsert", "daily_entries")()

	var created bool
	var err error

	if r.db.Dialector.Name() == "postgres" {
		err = r.db.WithContext(ctx).
			Raw(pgUpsert,
				userID, day.String(),
				amounts.Calories, amounts.Protein, amounts.Carbs,
				amounts.Fats, amounts.Sodium, amounts.Sugar).
			Scan(&created).Error
	} else {
		created, err = r.portableUpsert(ctx, userID, day, amounts)
	}
	if err != nil {
		return false, models.NewInternalError(err)
	}

	result := "updated"
	if created {
		result = "created"
	}
	observability.LedgerWrites.WithLabelValues(result).Inc()
	cache.InvalidateUser(ctx, userID)
	return created, nil
}

// portableUpsert covers dialects without the xmax trick (sqlite in dev/test).
// Both statements apply the increment server-side: an additive UPDATE first,
// and on a miss an insert that still falls back to an additive conflict
// update, so two racing first submissions cannot drop one contribution.
func (r *ledgerRepository) portableUpsert(ctx context.Context, userID uint, day models.Day, amounts models.NutrientAmounts) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.DailyEntry{}).
		Where("user_id = ? AND entry_date = ?", userID, day).
		Updates(map[string]interface{}{
			"calories": gorm.Expr("calories + ?", amounts.Calories),
			"protein":  gorm.Expr("protein + ?", amounts.Protein),
			"carbs":    gorm.Expr("carbs + ?", amounts.Carbs),
			"fats":     gorm.Expr("fats + ?", amounts.Fats),
			"sodium":   gorm.Expr("sodium + ?", amounts.Sodium),
			"sugar":    gorm.Expr("sugar + ?", amounts.Sugar),
		})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}

	entry := models.DailyEntry{
		UserID:   userID,
		Date:     day,
		Calories: amounts.Calories,
		Protein:  amounts.Protein,
		Carbs:    amounts.Carbs,
		Fats:     amounts.Fats,
		Sodium:   amounts.Sodium,
		Sugar:    amounts.Sugar,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "entry_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"calories": gorm.Expr("daily_entries.calories + excluded.calories"),
			"protein":  gorm.Expr("daily_entries.protein + excluded.protein"),
			"carbs":    gorm.Expr("daily_entries.carbs + excluded.carbs"),
			"fats":     gorm.Expr("daily_entries.fats + excluded.fats"),
			"sodium":   gorm.Expr("daily_entries.sodium + excluded.sodium"),
			"sugar":    gorm.Expr("daily_entries.sugar + excluded.sugar"),
		}),
	}).Create(&entry).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *ledgerRepository) ListByUser(ctx context.Context, userID uint) ([]models.DailyEntry, error) {
	defer r.metrics.TrackQuery("select", "daily_entries")()

	var entries []models.DailyEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("entry_date ASC").
		Find(&entries).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}
