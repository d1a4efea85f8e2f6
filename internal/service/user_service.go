// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"fmt"
	"strings"

	"nutrack/internal/models"
	"nutrack/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput carries the biometric fields of an update request.
// Nil fields were not supplied and leave the stored value unchanged.
type UpdateProfileInput struct {
	UserID        uint
	Height        *float64
	Weight        *float64
	Age           *int
	Gender        *string
	ActivityLevel *string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns the user's profile including the full daily ledger.
func (s *UserService) GetProfile(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByIDWithEntries(ctx, id)
}

// UpdateProfile overwrites the supplied biometric fields and leaves the rest
// unchanged.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Height != nil {
		if *in.Height <= 0 {
			return nil, models.NewValidationError("Height must be a positive number")
		}
		user.HeightIn = in.Height
	}
	if in.Weight != nil {
		if *in.Weight <= 0 {
			return nil, models.NewValidationError("Weight must be a positive number")
		}
		user.WeightLb = in.Weight
	}
	if in.Age != nil {
		if *in.Age <= 0 {
			return nil, models.NewValidationError("Age must be a positive number")
		}
		user.Age = in.Age
	}
	if in.Gender != nil {
		gender := strings.ToLower(strings.TrimSpace(*in.Gender))
		if gender != models.GenderMale && gender != models.GenderFemale {
			return nil, models.NewValidationError("Gender must be male or female")
		}
		user.Gender = gender
	}
	if in.ActivityLevel != nil {
		level, ok := models.ParseActivityLevel(*in.ActivityLevel)
		if !ok {
			return nil, models.NewValidationError(fmt.Sprintf("Unknown activity level %q", *in.ActivityLevel))
		}
		user.ActivityLevel = level
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
