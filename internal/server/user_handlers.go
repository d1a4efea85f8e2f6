package server

import (
	"nutrack/internal/models"
	"nutrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateInfo handles POST /update-info. Only the fields present in the body
// are changed; omitted fields keep their stored values.
func (s *Server) UpdateInfo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Height        *float64 `json:"height"`
		Weight        *float64 `json:"weight"`
		Age           *int     `json:"age"`
		Gender        *string  `json:"gender"`
		ActivityLevel *string  `json:"activityLevel"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:        userID,
		Height:        req.Height,
		Weight:        req.Weight,
		Age:           req.Age,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
	})
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok {
			switch appErr.Code {
			case "VALIDATION_ERROR":
				return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
			case "NOT_FOUND":
				return models.RespondWithError(c, fiber.StatusNotFound, appErr)
			}
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(fiber.Map{
		"message": "User info updated successfully",
		"user":    user,
	})
}

// GetUserInfo handles GET /user-info, returning the profile with the full
// daily ledger. The password hash never serializes.
func (s *Server) GetUserInfo(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "NOT_FOUND" {
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(user)
}
