package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"nutrack/internal/config"
	"nutrack/internal/models"
	"nutrack/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDWithEntries(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockLedgerRepository is a mock of the LedgerRepository interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Upsert(ctx context.Context, userID uint, day models.Day, amounts models.NutrientAmounts) (bool, error) {
	args := m.Called(ctx, userID, day, amounts)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) ListByUser(ctx context.Context, userID uint) ([]models.DailyEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyEntry), args.Error(1)
}

// newTestServer wires a Server around the given mocks the way
// NewServerWithDeps would, minus the infrastructure.
func newTestServer(userRepo *MockUserRepository, ledgerRepo *MockLedgerRepository) *Server {
	s := &Server{
		config:     &config.Config{JWTSecret: "test_secret"},
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
	}
	s.userService = service.NewUserService(userRepo)
	if ledgerRepo != nil {
		s.nutritionService = service.NewNutritionService(ledgerRepo)
		s.reportService = service.NewReportService(userRepo, ledgerRepo)
	}
	return s
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func(*MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "Password123!",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"username": "testuser",
				"email":    "exists@example.com",
				"password": "Password123!",
			},
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "testuser",
				"email":    "test@example.com",
				"password": "short",
			},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid Email",
			body: map[string]string{
				"username": "testuser",
				"email":    "not-an-email",
				"password": "Password123!",
			},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"email": "test@example.com",
			},
			mockSetup:      func(*MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newTestServer(mockRepo, nil)
			app.Post("/register", s.Register)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, resp)
				assert.Equal(t, "User registered successfully", body["message"])
				assert.NotContains(t, body, "token", "registration does not issue a token")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := &models.User{ID: 1, Username: "testuser", Email: "test@example.com", Password: string(hashed)}

	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockUserRepository)
		mockRepo.On("GetByEmail", mock.Anything, "test@example.com").Return(account, nil)
		s := newTestServer(mockRepo, nil)
		app.Post("/login", s.Login)

		body, _ := json.Marshal(map[string]string{
			"email":    "test@example.com",
			"password": "Password123!",
		})
		req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		respBody := decodeBody(t, resp)
		assert.Equal(t, "Login successful", respBody["message"])
		assert.NotEmpty(t, respBody["token"])
	})

	// Unknown accounts and wrong passwords must be indistinguishable.
	failures := []struct {
		name      string
		email     string
		password  string
		mockSetup func(*MockUserRepository)
	}{
		{
			name:     "Unknown Email",
			email:    "nobody@example.com",
			password: "Password123!",
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)
			},
		},
		{
			name:     "Wrong Password",
			email:    "test@example.com",
			password: "WrongPassword1!",
			mockSetup: func(m *MockUserRepository) {
				m.On("GetByEmail", mock.Anything, "test@example.com").Return(account, nil)
			},
		},
	}

	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			mockRepo := new(MockUserRepository)
			tt.mockSetup(mockRepo)
			s := newTestServer(mockRepo, nil)
			app.Post("/login", s.Login)

			body, _ := json.Marshal(map[string]string{
				"email":    tt.email,
				"password": tt.password,
			})
			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			respBody := decodeBody(t, resp)
			assert.Equal(t, "Invalid credentials", respBody["message"])
		})
	}
}

func TestLogoutWithoutRedis(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockUserRepository)
	s := newTestServer(mockRepo, nil)
	app.Post("/logout", s.AuthRequired(), s.Logout)

	token, err := s.generateToken(1, "testuser")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
