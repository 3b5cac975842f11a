package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"calotrack/internal/controllers"
	"calotrack/internal/models"
	"calotrack/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// Test helper functions
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func addAuthMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestCreateProfile(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*models.Profile")).Return(nil)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.POST("/profile", controller.CreateProfile)

	body, _ := json.Marshal(map[string]interface{}{
		"height_cm":      180,
		"weight_kg":      80,
		"age":            30,
		"gender":         "male",
		"activity_level": "moderate",
		"goal":           "maintain",
	})
	req := httptest.NewRequest("POST", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})

	// Derived fields are computed on the write path, not taken from input.
	assert.Equal(t, 1780.0, data["bmr"])
	assert.InDelta(t, 2759.0, data["tdee"], 0.01)
	assert.InDelta(t, 2759.0, data["daily_target"], 0.01)
	assert.Equal(t, 1500.0, data["min_calories"])
	assert.Equal(t, 24.7, data["bmi"])
	assert.Equal(t, 2800.0, data["hydration_ml"])
	assert.Nil(t, data["body_fat_pct"])

	mockRepo.AssertExpectations(t)
}

func TestCreateProfileConflict(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(&models.Profile{ID: 1, UserID: 1}, nil)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.POST("/profile", controller.CreateProfile)

	body, _ := json.Marshal(map[string]interface{}{
		"height_cm":      180,
		"weight_kg":      80,
		"age":            30,
		"gender":         "male",
		"activity_level": "moderate",
		"goal":           "maintain",
	})
	req := httptest.NewRequest("POST", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

// Two concurrent creates can both pass the existence check; the loser's
// unique-constraint violation must still surface as a conflict.
func TestCreateProfileConcurrentDuplicate(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.AnythingOfType("*models.Profile")).Return(gorm.ErrDuplicatedKey)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.POST("/profile", controller.CreateProfile)

	body, _ := json.Marshal(map[string]interface{}{
		"height_cm":      180,
		"weight_kg":      80,
		"age":            30,
		"gender":         "male",
		"activity_level": "moderate",
		"goal":           "maintain",
	})
	req := httptest.NewRequest("POST", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["message"], "Profile already exists")
}

func TestCreateProfileValidation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "height out of range",
			body: map[string]interface{}{
				"height_cm": 20, "weight_kg": 80, "age": 30,
				"gender": "male", "activity_level": "moderate", "goal": "maintain",
			},
		},
		{
			name: "age out of range",
			body: map[string]interface{}{
				"height_cm": 180, "weight_kg": 80, "age": 150,
				"gender": "male", "activity_level": "moderate", "goal": "maintain",
			},
		},
		{
			name: "unknown goal",
			body: map[string]interface{}{
				"height_cm": 180, "weight_kg": 80, "age": 30,
				"gender": "male", "activity_level": "moderate", "goal": "bulk",
			},
		},
		{
			name: "missing required fields",
			body: map[string]interface{}{"height_cm": 180},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProfileRepository)
			mockRepo.On("FindByUserID", uint(1)).Return(nil, gorm.ErrRecordNotFound).Maybe()

			controller := controllers.NewProfileController(mockRepo)
			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.POST("/profile", controller.CreateProfile)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest("POST", "/profile", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		})
	}
}

func TestGetProfile(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mocks.MockProfileRepository)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "successful retrieval",
			setupMock: func(m *mocks.MockProfileRepository) {
				m.On("FindByUserID", uint(1)).Return(&models.Profile{
					ID: 1, UserID: 1, HeightCm: 180, WeightKg: 80,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "Profile retrieved successfully",
		},
		{
			name: "profile not found",
			setupMock: func(m *mocks.MockProfileRepository) {
				m.On("FindByUserID", uint(1)).Return(nil, errors.New("profile not found"))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "Profile not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProfileRepository)
			tt.setupMock(mockRepo)

			controller := controllers.NewProfileController(mockRepo)
			router := setupTestRouter()
			router.Use(addAuthMiddleware(1))
			router.GET("/profile", controller.GetProfile)

			req := httptest.NewRequest("GET", "/profile", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Contains(t, response["message"], tt.expectedMsg)

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetProfileUnauthorized(t *testing.T) {
	controller := controllers.NewProfileController(new(mocks.MockProfileRepository))
	router := setupTestRouter()
	router.GET("/profile", controller.GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func existingProfileWithMeasurements() *models.Profile {
	return &models.Profile{
		ID:            1,
		UserID:        1,
		HeightCm:      180,
		WeightKg:      80,
		Age:           30,
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "maintain",
		WaistCm:       floatPtr(84),
		NeckCm:        floatPtr(38),
	}
}

func TestPatchProfileGoal(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(existingProfileWithMeasurements(), nil)

	var saved *models.Profile
	mockRepo.On("Update", mock.AnythingOfType("*models.Profile")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Profile)
	}).Return(nil)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.PATCH("/profile", controller.PatchProfile)

	body := []byte(`{"goal": "lose"}`)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lose", saved.Goal)
	// Target shifts down by the goal adjustment and is recomputed on write.
	assert.InDelta(t, saved.TDEE-500, saved.DailyTarget, 0.01)
	mockRepo.AssertExpectations(t)
}

// Clearing one measurement must clear the whole derived body-composition
// cluster, never a partial subset.
func TestPatchProfileClearMeasurementClearsCluster(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(existingProfileWithMeasurements(), nil)

	var saved *models.Profile
	mockRepo.On("Update", mock.AnythingOfType("*models.Profile")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Profile)
	}).Return(nil)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.PATCH("/profile", controller.PatchProfile)

	body := []byte(`{"waist_cm": null}`)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, saved.WaistCm)
	assert.Nil(t, saved.BodyFatPct)
	assert.Nil(t, saved.LBM)
	assert.Nil(t, saved.FFMI)
	assert.Nil(t, saved.ProteinMin)
	assert.Nil(t, saved.ProteinMax)
	mockRepo.AssertExpectations(t)
}

func TestPatchProfileSetMeasurementsPopulatesCluster(t *testing.T) {
	profile := existingProfileWithMeasurements()
	profile.WaistCm = nil
	profile.NeckCm = nil

	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(profile, nil)

	var saved *models.Profile
	mockRepo.On("Update", mock.AnythingOfType("*models.Profile")).Run(func(args mock.Arguments) {
		saved = args.Get(0).(*models.Profile)
	}).Return(nil)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.PATCH("/profile", controller.PatchProfile)

	body := []byte(`{"waist_cm": 84, "neck_cm": 38}`)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, saved.BodyFatPct)
	assert.NotNil(t, saved.LBM)
	assert.NotNil(t, saved.FFMI)
	assert.NotNil(t, saved.ProteinMin)
	assert.NotNil(t, saved.ProteinMax)
	mockRepo.AssertExpectations(t)
}

func TestPatchProfileRejectsImmutableField(t *testing.T) {
	mockRepo := new(mocks.MockProfileRepository)
	mockRepo.On("FindByUserID", uint(1)).Return(existingProfileWithMeasurements(), nil)

	controller := controllers.NewProfileController(mockRepo)
	router := setupTestRouter()
	router.Use(addAuthMiddleware(1))
	router.PATCH("/profile", controller.PatchProfile)

	// weight_kg is only settable at onboarding.
	body := []byte(`{"weight_kg": 90}`)
	req := httptest.NewRequest("PATCH", "/profile", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything)
}
