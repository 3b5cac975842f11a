package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile holds the user's raw body attributes plus the derived metabolic
// fields. Derived fields are never written independently; every mutating
// write recomputes them from the raw attributes.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID    uint           `gorm:"unique" json:"user_id" example:"1"`

	HeightCm      float64 `json:"height_cm" example:"180"`
	WeightKg      float64 `json:"weight_kg" example:"80"`
	Age           int     `json:"age" example:"30"`
	Gender        string  `json:"gender" example:"male"`
	ActivityLevel string  `json:"activity_level" example:"moderate"`
	Goal          string  `json:"goal" example:"maintain"`

	// Optional circumference measurements for body composition.
	WaistCm *float64 `json:"waist_cm" example:"84"`
	NeckCm  *float64 `json:"neck_cm" example:"38"`
	HipCm   *float64 `json:"hip_cm" example:"95"`

	// Derived metabolic fields.
	BMR         float64 `json:"bmr" example:"1780"`
	TDEE        float64 `json:"tdee" example:"2759"`
	DailyTarget float64 `json:"daily_target" example:"2759"`
	MinCalories float64 `json:"min_calories" example:"1500"`
	BMI         float64 `json:"bmi" example:"24.7"`
	HydrationMl float64 `json:"hydration_ml" example:"2800"`

	// Derived body-composition cluster. Either all set or all null,
	// depending on whether the required measurements are present.
	BodyFatPct *float64 `json:"body_fat_pct" example:"18.2"`
	LBM        *float64 `json:"lbm" example:"65.4"`
	FFMI       *float64 `json:"ffmi" example:"20.2"`
	ProteinMin *float64 `json:"protein_min" example:"105"`
	ProteinMax *float64 `json:"protein_max" example:"144"`
}
