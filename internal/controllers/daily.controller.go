package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"calotrack/internal/metabolic"
	"calotrack/internal/models"
	"calotrack/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CalorieEstimator is the external collaborator that turns a free-text food
// description into a single calorie number.
type CalorieEstimator interface {
	EstimateCalories(ctx context.Context, description string) (float64, error)
}

type DailyController struct {
	profileRepo repository.ProfileRepository
	dailyRepo   repository.DailyLogRepository
	estimator   CalorieEstimator
}

func NewDailyController(profileRepo repository.ProfileRepository, dailyRepo repository.DailyLogRepository, estimator CalorieEstimator) *DailyController {
	return &DailyController{
		profileRepo: profileRepo,
		dailyRepo:   dailyRepo,
		estimator:   estimator,
	}
}

type foodRequest struct {
	Name      string  `json:"name" binding:"required"`
	Calories  float64 `json:"calories"`
	InputType string  `json:"input_type"`
}

type exerciseRequest struct {
	Type        string `json:"type" binding:"required"`
	DurationMin int    `json:"duration_min" binding:"required"`
}

// today returns the current calendar date at midnight. Mutations always
// target this date; the first request after midnight lazily creates the new
// day's ledger, which is the whole rollover mechanism.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// requireProfile loads the caller's profile or writes the ProfileMissing
// response. The message is distinct from a generic not-found so clients can
// route to onboarding.
func (dc *DailyController) requireProfile(c *gin.Context, userID uint) (*models.Profile, bool) {
	profile, err := dc.profileRepo.FindByUserID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Profile required",
				"error":   "Create a profile before using the daily ledger",
			})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load profile",
			"error":   err.Error(),
		})
		return nil, false
	}
	return profile, true
}

// GetToday godoc
// @Summary Get today's ledger
// @Description Return today's daily log, creating it with zeroed aggregates if absent
// @Tags daily
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Daily log retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile required"
// @Router /daily [get]
func (dc *DailyController) GetToday(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	if _, ok := dc.requireProfile(c, userID.(uint)); !ok {
		return
	}

	log, err := dc.dailyRepo.GetOrCreate(userID.(uint), today())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load daily log",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Daily log retrieved successfully",
		"data":    log,
	})
}

// AddFood godoc
// @Summary Add a food entry
// @Description Add a food entry to today's ledger. Free-text, image and audio entries without a calorie value are priced by the external estimator.
// @Tags daily
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param food body foodRequest true "Food entry"
// @Success 201 {object} map[string]interface{} "Food entry added successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile required"
// @Router /daily/food [post]
func (dc *DailyController) AddFood(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	var req foodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if req.InputType == "" {
		req.InputType = models.InputTypeStructured
	}
	switch req.InputType {
	case models.InputTypeStructured, models.InputTypeFreeText, models.InputTypeImage, models.InputTypeAudio:
	default:
		respondValidationError(c, &metabolic.ValidationError{Field: "input_type", Message: "must be one of structured, free_text, image, audio"})
		return
	}

	profile, ok := dc.requireProfile(c, userID.(uint))
	if !ok {
		return
	}

	calories := req.Calories
	if calories <= 0 {
		if req.InputType == models.InputTypeStructured || dc.estimator == nil {
			respondValidationError(c, &metabolic.ValidationError{Field: "calories", Message: "must be positive"})
			return
		}
		estimated, err := dc.estimator.EstimateCalories(c.Request.Context(), req.Name)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"status":  "error",
				"message": "Calorie estimation failed",
				"error":   err.Error(),
			})
			return
		}
		calories = estimated
	}

	if _, err := dc.dailyRepo.GetOrCreate(userID.(uint), today()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load daily log",
			"error":   err.Error(),
		})
		return
	}

	entry := models.FoodEntry{
		Name:      req.Name,
		Calories:  calories,
		InputType: req.InputType,
	}
	log, err := dc.dailyRepo.AddFood(userID.(uint), today(), &entry, profile.DailyTarget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to add food entry",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Food entry added successfully",
		"data":    log,
	})
}

type foodUpdateRequest struct {
	Name     *string  `json:"name"`
	Calories *float64 `json:"calories"`
}

// UpdateFood godoc
// @Summary Edit a food entry
// @Description Update a food entry's name and/or calories; a calorie change recomputes the ledger aggregates and status
// @Tags daily
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Food entry ID"
// @Param food body foodUpdateRequest true "Fields to update"
// @Success 200 {object} map[string]interface{} "Food entry updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Router /daily/food/{id} [patch]
func (dc *DailyController) UpdateFood(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, &metabolic.ValidationError{Field: "id", Message: "must be a positive integer"})
		return
	}

	var req foodUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	if req.Name == nil && req.Calories == nil {
		respondValidationError(c, &metabolic.ValidationError{Field: "body", Message: "must set name or calories"})
		return
	}
	if req.Calories != nil && *req.Calories <= 0 {
		respondValidationError(c, &metabolic.ValidationError{Field: "calories", Message: "must be positive"})
		return
	}

	profile, ok := dc.requireProfile(c, userID.(uint))
	if !ok {
		return
	}

	log, err := dc.dailyRepo.UpdateFood(userID.(uint), uint(entryID), req.Name, req.Calories, profile.DailyTarget)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Entry not found",
				"error":   "No food entry with this id belongs to your ledger",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update food entry",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Food entry updated successfully",
		"data":    log,
	})
}

// RemoveFood godoc
// @Summary Delete a food entry
// @Description Remove a food entry from the caller's ledger and recompute the aggregates
// @Tags daily
// @Produce json
// @Security BearerAuth
// @Param id path int true "Food entry ID"
// @Success 200 {object} map[string]interface{} "Food entry deleted successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Entry not found"
// @Router /daily/food/{id} [delete]
func (dc *DailyController) RemoveFood(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondValidationError(c, &metabolic.ValidationError{Field: "id", Message: "must be a positive integer"})
		return
	}

	profile, ok := dc.requireProfile(c, userID.(uint))
	if !ok {
		return
	}

	log, err := dc.dailyRepo.RemoveFood(userID.(uint), uint(entryID), profile.DailyTarget)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  "error",
				"message": "Entry not found",
				"error":   "No food entry with this id belongs to your ledger",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to delete food entry",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Food entry deleted successfully",
		"data":    log,
	})
}

// AddExercise godoc
// @Summary Add an exercise entry
// @Description Record an exercise session; calories burned are estimated from the MET table and the current profile weight
// @Tags daily
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body exerciseRequest true "Exercise entry"
// @Success 201 {object} map[string]interface{} "Exercise entry added successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile required"
// @Router /daily/exercise [post]
func (dc *DailyController) AddExercise(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	var req exerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}
	if req.DurationMin <= 0 {
		respondValidationError(c, &metabolic.ValidationError{Field: "duration_min", Message: "must be positive"})
		return
	}

	profile, ok := dc.requireProfile(c, userID.(uint))
	if !ok {
		return
	}

	if _, err := dc.dailyRepo.GetOrCreate(userID.(uint), today()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load daily log",
			"error":   err.Error(),
		})
		return
	}

	entry := models.ExerciseEntry{
		Type:        req.Type,
		DurationMin: req.DurationMin,
		// Point-in-time estimate from the profile weight at insert; not
		// recomputed if the weight changes later.
		CaloriesBurned: metabolic.EstimateExerciseCalories(req.Type, req.DurationMin, profile.WeightKg),
	}
	log, err := dc.dailyRepo.AddExercise(userID.(uint), today(), &entry, profile.DailyTarget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to add exercise entry",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Exercise entry added successfully",
		"data":    log,
	})
}

// PreviewExercise godoc
// @Summary Preview exercise calories
// @Description Estimate calories burned for an exercise without recording it; uses the exact function the recording path uses
// @Tags daily
// @Produce json
// @Security BearerAuth
// @Param type query string true "Exercise type"
// @Param duration_min query int true "Duration in minutes"
// @Success 200 {object} map[string]interface{} "Estimate computed successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile required"
// @Router /daily/exercise/preview [get]
func (dc *DailyController) PreviewExercise(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	exerciseType := c.Query("type")
	if exerciseType == "" {
		respondValidationError(c, &metabolic.ValidationError{Field: "type", Message: "is required"})
		return
	}
	durationMin, err := strconv.Atoi(c.Query("duration_min"))
	if err != nil || durationMin <= 0 {
		respondValidationError(c, &metabolic.ValidationError{Field: "duration_min", Message: "must be a positive integer"})
		return
	}

	profile, ok := dc.requireProfile(c, userID.(uint))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Estimate computed successfully",
		"data": gin.H{
			"type":            exerciseType,
			"duration_min":    durationMin,
			"met":             metabolic.MET(exerciseType),
			"calories_burned": metabolic.EstimateExerciseCalories(exerciseType, durationMin, profile.WeightKg),
		},
	})
}

// GetHistory godoc
// @Summary Get ledger history
// @Description Return persisted daily log summaries ordered by date descending; days without a ledger are absent
// @Tags daily
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum number of days"
// @Success 200 {object} map[string]interface{} "History retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Router /daily/history [get]
func (dc *DailyController) GetHistory(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondValidationError(c, &metabolic.ValidationError{Field: "limit", Message: "must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	logs, err := dc.dailyRepo.ListByUserID(userID.(uint), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to load history",
			"error":   err.Error(),
		})
		return
	}

	summaries := make([]models.DailySummary, 0, len(logs))
	for i := range logs {
		summaries = append(summaries, logs[i].Summary())
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "History retrieved successfully",
		"data":    summaries,
	})
}
