package models

import "time"

// ExerciseEntry records one exercise session. CaloriesBurned is computed
// from the profile weight at insert time and is deliberately not recomputed
// if the weight changes later; it is a point-in-time estimate.
type ExerciseEntry struct {
	ID             uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt      time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	DailyLogID     uint      `gorm:"index" json:"daily_log_id" example:"1"`
	Type           string    `json:"type" example:"running"`
	DurationMin    int       `json:"duration_min" example:"30"`
	CaloriesBurned float64   `json:"calories_burned" example:"392"`
}
