package server

import (
	"nutrack/internal/cache"
	"nutrack/internal/models"
	"nutrack/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddDailyData handles POST /add-daily-data. Each call adds the submitted
// amounts onto the user's entry for the day, creating it on first submission.
// Responds 201 when the entry was created and 200 when it was accumulated.
func (s *Server) AddDailyData(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Date     *models.Day `json:"date"`
		Calories *float64    `json:"calories"`
		Protein  *float64    `json:"protein"`
		Carbs    *float64    `json:"carbs"`
		Fats     *float64    `json:"fats"`
		Sodium   *float64    `json:"sodium"`
		Sugar    *float64    `json:"sugar"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	input := service.RecordInput{
		UserID:   userID,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		Sodium:   req.Sodium,
		Sugar:    req.Sugar,
	}
	if req.Date != nil {
		input.Date = *req.Date
	}

	created, err := s.nutritionService.Record(c.Context(), input)
	if err != nil {
		if appErr, ok := err.(*models.AppError); ok && appErr.Code == "VALIDATION_ERROR" {
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	if created {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Daily data created successfully",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Daily data updated successfully",
	})
}

// DailySummary handles GET /daily-summary: BMR, TDEE, recommended targets and
// the trailing-week intake series. Requires complete biometrics. The result
// is cached briefly per user; ledger and profile writes invalidate it.
func (s *Server) DailySummary(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	today := models.Today()

	var summary service.Summary
	key := cache.SummaryKey(userID)
	err := cache.Aside(c.Context(), key, &summary, cache.SummaryTTL, func() error {
		result, err := s.reportService.BuildSummary(c.Context(), userID, today)
		if err != nil {
			return err
		}
		summary = *result
		return nil
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

	return c.JSON(summary)
}
