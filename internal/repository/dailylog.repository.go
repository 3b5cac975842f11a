package repository

import (
	"math"
	"time"

	"calotrack/internal/metabolic"
	"calotrack/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyLogRepository is the single authoritative mutator of ledger state.
// Every mutation recomputes the aggregates and status inside one transaction
// with the ledger row locked, so concurrent entry writes serialize instead
// of losing updates, and an entry can never be persisted without its
// aggregate update.
type DailyLogRepository interface {
	GetOrCreate(userID uint, date time.Time) (*models.DailyLog, error)
	AddFood(userID uint, date time.Time, entry *models.FoodEntry, dailyTarget float64) (*models.DailyLog, error)
	UpdateFood(userID uint, entryID uint, name *string, calories *float64, dailyTarget float64) (*models.DailyLog, error)
	RemoveFood(userID uint, entryID uint, dailyTarget float64) (*models.DailyLog, error)
	AddExercise(userID uint, date time.Time, entry *models.ExerciseEntry, dailyTarget float64) (*models.DailyLog, error)
	ListByUserID(userID uint, limit int) ([]models.DailyLog, error)
}

type dailyLogRepository struct {
	db *gorm.DB
}

func NewDailyLogRepository(db *gorm.DB) DailyLogRepository {
	return &dailyLogRepository{db}
}

// GetOrCreate returns the ledger for (user, date), creating it with zeroed
// aggregates if absent. The insert uses ON CONFLICT DO NOTHING against the
// (user_id, date) unique index, so N concurrent callers produce exactly one
// row; the losers fall through to the read and observe the winner's row.
func (r *dailyLogRepository) GetOrCreate(userID uint, date time.Time) (*models.DailyLog, error) {
	log := models.DailyLog{
		UserID: userID,
		Date:   date,
		Status: metabolic.StatusMaintenance,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoNothing: true,
	}).Create(&log).Error
	if err != nil {
		return nil, err
	}

	return r.findWithEntries(userID, date)
}

func (r *dailyLogRepository) AddFood(userID uint, date time.Time, entry *models.FoodEntry, dailyTarget float64) (*models.DailyLog, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		log, err := lockLog(tx, userID, date)
		if err != nil {
			return err
		}

		entry.DailyLogID = log.ID
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		log.TotalConsumed = round2(log.TotalConsumed + entry.Calories)
		return saveAggregates(tx, log, dailyTarget)
	})
	if err != nil {
		return nil, err
	}

	return r.findWithEntries(userID, date)
}

// UpdateFood edits a food entry's name and/or calories and, when the
// calories change, adjusts the ledger aggregates by the delta under the
// same row lock the add path uses.
func (r *dailyLogRepository) UpdateFood(userID uint, entryID uint, name *string, calories *float64, dailyTarget float64) (*models.DailyLog, error) {
	var logUserID uint
	var logDate time.Time
	err := r.db.Transaction(func(tx *gorm.DB) error {
		entry, err := lockEntry(tx, userID, entryID)
		if err != nil {
			return err
		}

		var log models.DailyLog
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&log, entry.DailyLogID).Error; err != nil {
			return err
		}

		if name != nil {
			entry.Name = *name
		}
		if calories != nil {
			log.TotalConsumed = round2(log.TotalConsumed - entry.Calories + *calories)
			entry.Calories = *calories
		}
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		if err := saveAggregates(tx, &log, dailyTarget); err != nil {
			return err
		}
		logUserID = log.UserID
		logDate = log.Date
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.findWithEntries(logUserID, logDate)
}

func (r *dailyLogRepository) RemoveFood(userID uint, entryID uint, dailyTarget float64) (*models.DailyLog, error) {
	var logUserID uint
	var logDate time.Time
	err := r.db.Transaction(func(tx *gorm.DB) error {
		entry, err := lockEntry(tx, userID, entryID)
		if err != nil {
			return err
		}

		var log models.DailyLog
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&log, entry.DailyLogID).Error; err != nil {
			return err
		}

		// A concurrent delete of the same entry can still win between our
		// read and this statement; only subtract if this delete is the one
		// that actually removed the row.
		res := tx.Delete(&models.FoodEntry{}, entry.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		log.TotalConsumed = round2(log.TotalConsumed - entry.Calories)
		if log.TotalConsumed < 0 {
			log.TotalConsumed = 0
		}
		if err := saveAggregates(tx, &log, dailyTarget); err != nil {
			return err
		}
		logUserID = log.UserID
		logDate = log.Date
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.findWithEntries(logUserID, logDate)
}

func (r *dailyLogRepository) AddExercise(userID uint, date time.Time, entry *models.ExerciseEntry, dailyTarget float64) (*models.DailyLog, error) {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		log, err := lockLog(tx, userID, date)
		if err != nil {
			return err
		}

		entry.DailyLogID = log.ID
		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		log.TotalBurned = round2(log.TotalBurned + entry.CaloriesBurned)
		return saveAggregates(tx, log, dailyTarget)
	})
	if err != nil {
		return nil, err
	}

	return r.findWithEntries(userID, date)
}

// ListByUserID returns the user's ledgers newest-first. Days without a
// ledger are simply absent. limit <= 0 returns everything.
func (r *dailyLogRepository) ListByUserID(userID uint, limit int) ([]models.DailyLog, error) {
	var logs []models.DailyLog
	q := r.db.Where("user_id = ?", userID).Order("date DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&logs).Error
	return logs, err
}

// lockEntry reads a food entry with a SELECT ... FOR UPDATE, scoped through
// the ledger so a user cannot touch another user's entry; a miss is a plain
// record-not-found. Locking the entry row makes a concurrent delete of the
// same entry block here and observe the row as gone once the winner commits.
func lockEntry(tx *gorm.DB, userID uint, entryID uint) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Joins("JOIN daily_logs ON daily_logs.id = food_entries.daily_log_id").
		Where("food_entries.id = ? AND daily_logs.user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// lockLog reads the ledger row for (user, date) with a SELECT ... FOR UPDATE
// so concurrent aggregate updates serialize.
func lockLog(tx *gorm.DB, userID uint, date time.Time) (*models.DailyLog, error) {
	var log models.DailyLog
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// saveAggregates recomputes net calories and status from the stored totals
// and persists the ledger row. Status is always derived from net_calories,
// never written independently, so it cannot drift from the aggregates.
func saveAggregates(tx *gorm.DB, log *models.DailyLog, dailyTarget float64) error {
	log.NetCalories = round2(log.TotalConsumed - log.TotalBurned)
	log.Status = metabolic.ClassifyStatus(log.NetCalories, dailyTarget)
	return tx.Save(log).Error
}

func (r *dailyLogRepository) findWithEntries(userID uint, date time.Time) (*models.DailyLog, error) {
	var log models.DailyLog
	err := r.db.
		Preload("FoodEntries", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Preload("ExerciseEntries", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("user_id = ? AND date = ?", userID, date).
		First(&log).Error
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
