package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func postDailyData(t *testing.T, app *fiber.App, payload map[string]any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, "/add-daily-data", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAddDailyData(t *testing.T) {
	payload := map[string]any{
		"date":     "2026-09-01",
		"calories": 500,
		"protein":  30,
		"carbs":    60,
		"fats":     20,
	}

	t.Run("First Submission Creates", func(t *testing.T) {
		app := fiber.New()
		mockLedger := new(MockLedgerRepository)
		mockLedger.On("Upsert", mock.Anything, uint(1), models.NewDay(2026, 9, 1), models.NutrientAmounts{
			Calories: 500, Protein: 30, Carbs: 60, Fats: 20,
		}).Return(true, nil)
		s := newTestServer(new(MockUserRepository), mockLedger)
		app.Post("/add-daily-data", asUser(1), s.AddDailyData)

		resp := postDailyData(t, app, payload)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Daily data created successfully", body["message"])
	})

	t.Run("Repeat Submission Accumulates", func(t *testing.T) {
		app := fiber.New()
		mockLedger := new(MockLedgerRepository)
		mockLedger.On("Upsert", mock.Anything, uint(1), models.NewDay(2026, 9, 1), mock.Anything).Return(false, nil)
		s := newTestServer(new(MockUserRepository), mockLedger)
		app.Post("/add-daily-data", asUser(1), s.AddDailyData)

		resp := postDailyData(t, app, payload)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Equal(t, "Daily data updated successfully", body["message"])
	})

	t.Run("Date Defaults To Today", func(t *testing.T) {
		app := fiber.New()
		mockLedger := new(MockLedgerRepository)
		mockLedger.On("Upsert", mock.Anything, uint(1), models.Today(), mock.Anything).Return(true, nil)
		s := newTestServer(new(MockUserRepository), mockLedger)
		app.Post("/add-daily-data", asUser(1), s.AddDailyData)

		resp := postDailyData(t, app, map[string]any{
			"calories": 500, "protein": 30, "carbs": 60, "fats": 20,
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockLedger.AssertExpectations(t)
	})

	t.Run("Invalid Payloads", func(t *testing.T) {
		tests := []struct {
			name    string
			payload map[string]any
		}{
			{"missing calories", map[string]any{"protein": 30, "carbs": 60, "fats": 20}},
			{"missing protein", map[string]any{"calories": 500, "carbs": 60, "fats": 20}},
			{"negative calories", map[string]any{"calories": -1, "protein": 30, "carbs": 60, "fats": 20}},
			{"malformed date", map[string]any{"date": "09/01/2026", "calories": 500, "protein": 30, "carbs": 60, "fats": 20}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				app := fiber.New()
				mockLedger := new(MockLedgerRepository)
				s := newTestServer(new(MockUserRepository), mockLedger)
				app.Post("/add-daily-data", asUser(1), s.AddDailyData)

				resp := postDailyData(t, app, tt.payload)
				defer func() { _ = resp.Body.Close() }()
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
				mockLedger.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("Requires Auth", func(t *testing.T) {
		app := fiber.New()
		s := newTestServer(new(MockUserRepository), new(MockLedgerRepository))
		app.Post("/add-daily-data", s.AuthRequired(), s.AddDailyData)

		resp := postDailyData(t, app, payload)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestDailySummary(t *testing.T) {
	completeUser := func() *models.User {
		return &models.User{
			ID:            1,
			Username:      "testuser",
			HeightIn:      floatPtr(69),
			WeightLb:      floatPtr(154),
			Age:           intPtr(30),
			Gender:        models.GenderMale,
			ActivityLevel: models.ActivityModerate,
		}
	}

	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(1)).Return(completeUser(), nil)
		mockLedger := new(MockLedgerRepository)
		mockLedger.On("ListByUser", mock.Anything, uint(1)).Return([]models.DailyEntry{
			{UserID: 1, Date: models.Today(), Calories: 1200, Protein: 80},
		}, nil)
		s := newTestServer(mockRepo, mockLedger)
		app.Get("/daily-summary", asUser(1), s.DailySummary)

		req := httptest.NewRequest(http.MethodGet, "/daily-summary", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body := decodeBody(t, resp)
		assert.Greater(t, body["bmr"], 1000.0)
		assert.Greater(t, body["tdee"], body["bmr"])

		targets, ok := body["targets"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 2300.0, targets["sodium"])

		series, ok := body["series"].([]any)
		require.True(t, ok)
		require.Len(t, series, 7)
		last, ok := series[6].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, 1200.0, last["calories"])
	})

	t.Run("Incomplete Profile", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1, Username: "testuser"}, nil)
		s := newTestServer(mockRepo, new(MockLedgerRepository))
		app.Get("/daily-summary", asUser(1), s.DailySummary)

		req := httptest.NewRequest(http.MethodGet, "/daily-summary", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
