package metabolic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateEnergy(t *testing.T) {
	energy, err := CalculateEnergy(180, 80, 30, "male", "moderate", "maintain")

	assert.NoError(t, err)
	assert.Equal(t, 1780.0, energy.BMR)
	assert.InDelta(t, 1780*1.55, energy.TDEE, 0.01)
	assert.Equal(t, energy.TDEE, energy.DailyTarget)
	assert.Equal(t, 1500.0, energy.MinCalories)
}

func TestCalculateEnergyFemale(t *testing.T) {
	energy, err := CalculateEnergy(165, 60, 28, "female", "light", "maintain")

	assert.NoError(t, err)
	// 10*60 + 6.25*165 - 5*28 - 161 = 1330.25
	assert.Equal(t, 1330.25, energy.BMR)
	assert.InDelta(t, 1330.25*1.375, energy.TDEE, 0.01)
	assert.Equal(t, 1200.0, energy.MinCalories)
}

func TestCalculateEnergyGoalAdjustments(t *testing.T) {
	maintain, err := CalculateEnergy(180, 80, 30, "male", "moderate", "maintain")
	assert.NoError(t, err)

	lose, err := CalculateEnergy(180, 80, 30, "male", "moderate", "lose")
	assert.NoError(t, err)
	assert.InDelta(t, maintain.DailyTarget-500, lose.DailyTarget, 0.01)

	gain, err := CalculateEnergy(180, 80, 30, "male", "moderate", "gain")
	assert.NoError(t, err)
	assert.InDelta(t, maintain.DailyTarget+500, gain.DailyTarget, 0.01)
}

func TestCalculateEnergyClampsToMinimum(t *testing.T) {
	// Small sedentary profile where TDEE - 500 drops below the floor.
	energy, err := CalculateEnergy(150, 45, 60, "female", "sedentary", "lose")

	assert.NoError(t, err)
	assert.Less(t, energy.TDEE-500, energy.MinCalories)
	assert.Equal(t, 1200.0, energy.DailyTarget)
}

func TestCalculateEnergyValidation(t *testing.T) {
	tests := []struct {
		name          string
		heightCm      float64
		weightKg      float64
		age           int
		gender        string
		activityLevel string
		goal          string
		wantField     string
	}{
		{"height too low", 40, 80, 30, "male", "moderate", "maintain", "height_cm"},
		{"height too high", 320, 80, 30, "male", "moderate", "maintain", "height_cm"},
		{"weight too low", 180, 10, 30, "male", "moderate", "maintain", "weight_kg"},
		{"weight too high", 180, 600, 30, "male", "moderate", "maintain", "weight_kg"},
		{"age too low", 180, 80, 5, "male", "moderate", "maintain", "age"},
		{"age too high", 180, 80, 150, "male", "moderate", "maintain", "age"},
		{"bad gender", 180, 80, 30, "unknown", "moderate", "maintain", "gender"},
		{"bad activity level", 180, 80, 30, "male", "extreme", "maintain", "activity_level"},
		{"bad goal", 180, 80, 30, "male", "moderate", "bulk", "goal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculateEnergy(tt.heightCm, tt.weightKg, tt.age, tt.gender, tt.activityLevel, tt.goal)

			var validationErr *ValidationError
			assert.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	const target = 2000.0

	tests := []struct {
		name string
		net  float64
		want string
	}{
		{"well below target", 1500, StatusDeficit},
		{"exactly at lower band edge", target - 100, StatusMaintenance},
		{"one below lower band edge", target - 101, StatusDeficit},
		{"at target", target, StatusMaintenance},
		{"exactly at upper band edge", target + 100, StatusMaintenance},
		{"one above upper band edge", target + 101, StatusSurplus},
		{"well above target", 3000, StatusSurplus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyStatus(tt.net, target))
		})
	}
}
