package mocks

import (
	"context"
	"time"

	"calotrack/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockUserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Shared MockProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

func (m *MockProfileRepository) FindByUserID(userID uint) (*models.Profile, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(profile *models.Profile) error {
	args := m.Called(profile)
	return args.Error(0)
}

// Shared MockDailyLogRepository
type MockDailyLogRepository struct {
	mock.Mock
}

func (m *MockDailyLogRepository) GetOrCreate(userID uint, date time.Time) (*models.DailyLog, error) {
	args := m.Called(userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) AddFood(userID uint, date time.Time, entry *models.FoodEntry, dailyTarget float64) (*models.DailyLog, error) {
	args := m.Called(userID, date, entry, dailyTarget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) UpdateFood(userID uint, entryID uint, name *string, calories *float64, dailyTarget float64) (*models.DailyLog, error) {
	args := m.Called(userID, entryID, name, calories, dailyTarget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) RemoveFood(userID uint, entryID uint, dailyTarget float64) (*models.DailyLog, error) {
	args := m.Called(userID, entryID, dailyTarget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) AddExercise(userID uint, date time.Time, entry *models.ExerciseEntry, dailyTarget float64) (*models.DailyLog, error) {
	args := m.Called(userID, date, entry, dailyTarget)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) ListByUserID(userID uint, limit int) ([]models.DailyLog, error) {
	args := m.Called(userID, limit)
	return args.Get(0).([]models.DailyLog), args.Error(1)
}

// MockCalorieEstimator stands in for the external estimation collaborator.
type MockCalorieEstimator struct {
	mock.Mock
}

func (m *MockCalorieEstimator) EstimateCalories(ctx context.Context, description string) (float64, error) {
	args := m.Called(ctx, description)
	return args.Get(0).(float64), args.Error(1)
}
