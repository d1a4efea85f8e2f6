package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Gender values accepted by the profile schema.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// ActivityLevel is the self-reported exercise frequency used to scale BMR
// into TDEE.
type ActivityLevel string

// Known activity levels, least to most active.
const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "lightly_active"
	ActivityModerate   ActivityLevel = "moderately_active"
	ActivityVery       ActivityLevel = "very_active"
	ActivitySuper      ActivityLevel = "super_active"
	ActivityUnspecified ActivityLevel = ""
)

// ParseActivityLevel normalizes a user-supplied activity level string.
// Returns false for values outside the known set.
func ParseActivityLevel(s string) (ActivityLevel, bool) {
	normalized := ActivityLevel(strings.ToLower(strings.TrimSpace(s)))
	switch normalized {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityVery, ActivitySuper:
		return normalized, true
	}
	return ActivityUnspecified, false
}

// User represents an account in the Nutrack application. Biometric fields are
// pointers so an unset profile is distinguishable from a zero measurement.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"unique;not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Biometrics, as submitted: height in inches, weight in pounds.
	HeightIn      *float64      `gorm:"column:height_in" json:"height,omitempty"`
	WeightLb      *float64      `gorm:"column:weight_lb" json:"weight,omitempty"`
	Age           *int          `json:"age,omitempty"`
	Gender        string        `json:"gender,omitempty"`
	ActivityLevel ActivityLevel `json:"activityLevel,omitempty"`

	DailyData []DailyEntry `gorm:"foreignKey:UserID" json:"dailyData,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasCompleteBiometrics reports whether every field needed for BMR/TDEE
// derivation is present.
func (u *User) HasCompleteBiometrics() bool {
	return u.HeightIn != nil && u.WeightLb != nil && u.Age != nil &&
		(u.Gender == GenderMale || u.Gender == GenderFemale)
}
