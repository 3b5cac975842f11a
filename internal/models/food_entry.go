package models

import "time"

// Valid input types for a food entry. Free-text, image and audio entries
// get their calorie value from the external estimator; structured entries
// carry it directly.
const (
	InputTypeStructured = "structured"
	InputTypeFreeText   = "free_text"
	InputTypeImage      = "image"
	InputTypeAudio      = "audio"
)

type FoodEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt  time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	DailyLogID uint      `gorm:"index" json:"daily_log_id" example:"1"`
	Name       string    `json:"name" example:"oatmeal with banana"`
	Calories   float64   `json:"calories" example:"350"`
	InputType  string    `json:"input_type" example:"structured"`
}
