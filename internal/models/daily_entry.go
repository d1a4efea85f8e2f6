package models

import (
	"time"
)

// DailyEntry holds one user's accumulated nutrient totals for one calendar
// day. An entry is created on the first submission for its day and from then
// on only ever grows by field-level addition; nothing exposed deletes it.
type DailyEntry struct {
	ID     uint `gorm:"primaryKey" json:"-"`
	UserID uint `gorm:"not null;uniqueIndex:idx_user_day" json:"-"`
	Date   Day  `gorm:"column:entry_date;not null;uniqueIndex:idx_user_day" json:"date"`

	Calories float64 `gorm:"not null" json:"calories"`
	Protein  float64 `gorm:"not null" json:"protein"`
	Carbs    float64 `gorm:"not null" json:"carbs"`
	Fats     float64 `gorm:"not null" json:"fats"`
	Sodium   float64 `json:"sodium"`
	Sugar    float64 `json:"sugar"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// NutrientAmounts is one submission's contribution to a day's totals.
// Sodium and sugar default to zero when the caller omits them.
type NutrientAmounts struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fats     float64
	Sodium   float64
	Sugar    float64
}

// Add accumulates amounts into the entry's totals.
func (e *DailyEntry) Add(a NutrientAmounts) {
	e.Calories += a.Calories
	e.Protein += a.Protein
	e.Carbs += a.Carbs
	e.Fats += a.Fats
	e.Sodium += a.Sodium
	e.Sugar += a.Sugar
}
