package main

import (
	"log"
	"time"

	"calotrack/database"
	"calotrack/internal/metabolic"
	"calotrack/internal/models"
	"calotrack/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account with a profile and a week of ledger history so the
// dashboard has something to show on a fresh database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	profileRepo := repository.NewProfileRepository(database.DB)
	dailyRepo := repository.NewDailyLogRepository(database.DB)

	if _, err := userRepo.FindByEmail("demo@calotrack.dev"); err == nil {
		log.Println("Demo user already exists, nothing to do")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	user := models.User{
		Name:     "Demo User",
		Email:    "demo@calotrack.dev",
		Password: string(hashed),
	}
	if err := userRepo.Create(&user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	waist, neck := 84.0, 38.0
	profile := models.Profile{
		UserID:        user.ID,
		HeightCm:      180,
		WeightKg:      80,
		Age:           30,
		Gender:        "male",
		ActivityLevel: "moderate",
		Goal:          "lose",
		WaistCm:       &waist,
		NeckCm:        &neck,
	}

	energy, err := metabolic.CalculateEnergy(profile.HeightCm, profile.WeightKg, profile.Age, profile.Gender, profile.ActivityLevel, profile.Goal)
	if err != nil {
		log.Fatalf("Failed to compute demo profile energy: %v", err)
	}
	composition, err := metabolic.CalculateComposition(profile.HeightCm, profile.WeightKg, profile.Gender, profile.WaistCm, profile.NeckCm, profile.HipCm)
	if err != nil {
		log.Fatalf("Failed to compute demo profile composition: %v", err)
	}
	profile.BMR = energy.BMR
	profile.TDEE = energy.TDEE
	profile.DailyTarget = energy.DailyTarget
	profile.MinCalories = energy.MinCalories
	profile.BMI = composition.BMI
	profile.HydrationMl = composition.HydrationMl
	profile.BodyFatPct = composition.BodyFatPct
	profile.LBM = composition.LBM
	profile.FFMI = composition.FFMI
	profile.ProteinMin = composition.ProteinMin
	profile.ProteinMax = composition.ProteinMax

	if err := profileRepo.Create(&profile); err != nil {
		log.Fatalf("Failed to create demo profile: %v", err)
	}

	meals := []struct {
		name     string
		calories float64
	}{
		{"oatmeal with banana", 350},
		{"chicken salad", 520},
		{"pasta with tomato sauce", 680},
	}

	now := time.Now()
	for daysBack := 7; daysBack >= 1; daysBack-- {
		date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).
			AddDate(0, 0, -daysBack)

		if _, err := dailyRepo.GetOrCreate(user.ID, date); err != nil {
			log.Fatalf("Failed to create ledger for %s: %v", date.Format("2006-01-02"), err)
		}

		for _, meal := range meals {
			entry := models.FoodEntry{
				Name:      meal.name,
				Calories:  meal.calories,
				InputType: models.InputTypeStructured,
			}
			if _, err := dailyRepo.AddFood(user.ID, date, &entry, profile.DailyTarget); err != nil {
				log.Fatalf("Failed to seed food entry: %v", err)
			}
		}

		// Every other day includes a run.
		if daysBack%2 == 0 {
			exercise := models.ExerciseEntry{
				Type:           "running",
				DurationMin:    30,
				CaloriesBurned: metabolic.EstimateExerciseCalories("running", 30, profile.WeightKg),
			}
			if _, err := dailyRepo.AddExercise(user.ID, date, &exercise, profile.DailyTarget); err != nil {
				log.Fatalf("Failed to seed exercise entry: %v", err)
			}
		}
	}

	log.Println("Seeded demo user demo@calotrack.dev with a week of ledger history")
}
