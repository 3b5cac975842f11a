// Package metabolic holds the pure calculation core: BMR/TDEE/daily-target
// derivation, body composition, exercise energy estimation and daily status
// classification. Nothing in here touches the database; the same functions
// back both the authoritative writes and the client-facing previews.
package metabolic

import "math"

// activityMultipliers maps activity level strings to their TDEE multiplier.
// This is the single source of truth for valid activity levels — also used
// for input validation.
var activityMultipliers = map[string]float64{
	"sedentary": 1.2,
	"light":     1.375,
	"moderate":  1.55,
	"active":    1.725,
}

// goalAdjustments is the kcal/day delta applied to TDEE per goal
// (±500 kcal/day ≈ 1 lb/week).
var goalAdjustments = map[string]float64{
	"lose":     -500,
	"maintain": 0,
	"gain":     500,
}

// Safe daily minimums (NIH/Mayo Clinic guidance): the daily target is
// clamped upward to these regardless of goal.
const (
	minCaloriesFemale = 1200
	minCaloriesMale   = 1500
)

// Sane physiological input ranges. Anything outside fails validation.
const (
	minHeightCm = 50
	maxHeightCm = 300
	minWeightKg = 20
	maxWeightKg = 500
	minAge      = 10
	maxAge      = 120
)

// ValidationError identifies the offending field of an invalid input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Energy is the derived metabolic output for a profile.
type Energy struct {
	BMR         float64
	TDEE        float64
	DailyTarget float64
	MinCalories float64
}

// ValidateAttributes checks the raw profile attributes against the accepted
// physiological ranges and enumerations.
func ValidateAttributes(heightCm, weightKg float64, age int, gender, activityLevel, goal string) error {
	if heightCm < minHeightCm || heightCm > maxHeightCm {
		return &ValidationError{Field: "height_cm", Message: "must be between 50 and 300"}
	}
	if weightKg < minWeightKg || weightKg > maxWeightKg {
		return &ValidationError{Field: "weight_kg", Message: "must be between 20 and 500"}
	}
	if age < minAge || age > maxAge {
		return &ValidationError{Field: "age", Message: "must be between 10 and 120"}
	}
	if gender != "male" && gender != "female" {
		return &ValidationError{Field: "gender", Message: "must be male or female"}
	}
	if _, ok := activityMultipliers[activityLevel]; !ok {
		return &ValidationError{Field: "activity_level", Message: "must be one of sedentary, light, moderate, active"}
	}
	if _, ok := goalAdjustments[goal]; !ok {
		return &ValidationError{Field: "goal", Message: "must be one of lose, maintain, gain"}
	}
	return nil
}

// CalculateEnergy derives BMR (Mifflin-St Jeor), TDEE, the goal-adjusted
// daily calorie target and the gender-specific safe minimum. It is a pure
// total function over valid input and an error over invalid input; it never
// partially applies.
func CalculateEnergy(heightCm, weightKg float64, age int, gender, activityLevel, goal string) (Energy, error) {
	if err := ValidateAttributes(heightCm, weightKg, age, gender, activityLevel, goal); err != nil {
		return Energy{}, err
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}

	tdee := bmr * activityMultipliers[activityLevel]

	minCalories := float64(minCaloriesFemale)
	if gender == "male" {
		minCalories = minCaloriesMale
	}

	target := tdee + goalAdjustments[goal]
	if target < minCalories {
		target = minCalories
	}

	return Energy{
		BMR:         round2(bmr),
		TDEE:        round2(tdee),
		DailyTarget: round2(target),
		MinCalories: minCalories,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
