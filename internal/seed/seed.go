// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"nutrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumDays     int
	ShouldClean bool
}

// Seeder populates the database with realistic demo data.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Entries go first to satisfy the foreign key.
func (s *Seeder) ClearAll() error {
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.DailyEntry{}).Error; err != nil {
		return fmt.Errorf("clear daily entries: %w", err)
	}
	if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Unscoped().Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("clear users: %w", err)
	}
	log.Println("✓ Database cleared")
	return nil
}

// Run seeds users with biometric profiles and a ledger history.
func (s *Seeder) Run(opts Options) error {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumDays <= 0 {
		opts.NumDays = 14
	}

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.createUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d users created", len(users))

	entries, err := s.createLedgerHistory(users, opts.NumDays)
	if err != nil {
		return fmt.Errorf("failed to create ledger history: %w", err)
	}
	log.Printf("✓ %d daily entries created", entries)

	return nil
}

var activityLevels = []models.ActivityLevel{
	models.ActivitySedentary,
	models.ActivityLight,
	models.ActivityModerate,
	models.ActivityVery,
	models.ActivitySuper,
}

func (s *Seeder) createUsers(n int) ([]models.User, error) {
	// One shared hash keeps seeding fast; demo accounts all use the same password.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i)
		if len(username) > 30 {
			username = username[:30]
		}

		gender := models.GenderFemale
		if s.rng.Intn(2) == 0 {
			gender = models.GenderMale
		}

		height := 58 + s.rng.Float64()*20 // 4'10" to 6'6"
		weight := 100 + s.rng.Float64()*150
		age := 18 + s.rng.Intn(60)

		user := models.User{
			Username:      username,
			Email:         fmt.Sprintf("%s@example.com", username),
			Password:      string(hashed),
			HeightIn:      &height,
			WeightLb:      &weight,
			Age:           &age,
			Gender:        gender,
			ActivityLevel: activityLevels[s.rng.Intn(len(activityLevels))],
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	// A handful of fresh signups that never filled in their profile.
	for i := 0; i < n/10+1; i++ {
		username := fmt.Sprintf("newbie_%s%d", strings.ToLower(gofakeit.Word()), i)
		user := models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@example.com", username),
			Password: string(hashed),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (s *Seeder) createLedgerHistory(users []models.User, days int) (int, error) {
	today := models.Today()
	total := 0

	for _, user := range users {
		for offset := -(days - 1); offset <= 0; offset++ {
			// Most days get logged, some get skipped.
			if s.rng.Intn(10) == 0 {
				continue
			}

			calories := 1400 + s.rng.Float64()*1400
			entry := models.DailyEntry{
				UserID:   user.ID,
				Date:     today.AddDays(offset),
				Calories: calories,
				Protein:  40 + s.rng.Float64()*120,
				Carbs:    calories * 0.5 / 4,
				Fats:     calories * 0.25 / 9,
				Sodium:   1200 + s.rng.Float64()*2400,
				Sugar:    10 + s.rng.Float64()*60,
			}
			if err := s.db.Create(&entry).Error; err != nil {
				return total, err
			}
			total++
		}
	}

	return total, nil
}
