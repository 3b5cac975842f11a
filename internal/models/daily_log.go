package models

import "time"

// DailyLog is the per-user per-date calorie ledger. The composite unique
// index on (user_id, date) is what makes concurrent first-of-the-day
// creation safe; the repository inserts with ON CONFLICT DO NOTHING and
// re-reads the winner. Logs are never deleted, so there is no soft-delete
// column here.
type DailyLog struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	UserID    uint      `gorm:"uniqueIndex:uq_user_date" json:"user_id" example:"1"`
	Date      time.Time `gorm:"type:date;uniqueIndex:uq_user_date" json:"date" example:"2023-01-01T00:00:00Z"`

	TotalConsumed float64 `json:"total_consumed" example:"1850"`
	TotalBurned   float64 `json:"total_burned" example:"320"`
	NetCalories   float64 `json:"net_calories" example:"1530"`
	Status        string  `json:"status" example:"deficit"`

	FoodEntries     []FoodEntry     `gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE" json:"food_entries"`
	ExerciseEntries []ExerciseEntry `gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE" json:"exercise_entries"`
}

// DailySummary is the history projection of a DailyLog, without its entries.
type DailySummary struct {
	Date          time.Time `json:"date" example:"2023-01-01T00:00:00Z"`
	TotalConsumed float64   `json:"total_consumed" example:"1850"`
	TotalBurned   float64   `json:"total_burned" example:"320"`
	NetCalories   float64   `json:"net_calories" example:"1530"`
	Status        string    `json:"status" example:"deficit"`
}

// Summary projects the log into its history form.
func (l *DailyLog) Summary() DailySummary {
	return DailySummary{
		Date:          l.Date,
		TotalConsumed: l.TotalConsumed,
		TotalBurned:   l.TotalBurned,
		NetCalories:   l.NetCalories,
		Status:        l.Status,
	}
}
