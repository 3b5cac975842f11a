package controllers

import (
	"errors"
	"net/http"

	"calotrack/internal/metabolic"
	"calotrack/internal/models"
	"calotrack/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProfileController struct {
	repo repository.ProfileRepository
}

func NewProfileController(repo repository.ProfileRepository) *ProfileController {
	return &ProfileController{repo: repo}
}

type profileRequest struct {
	HeightCm      float64  `json:"height_cm" binding:"required"`
	WeightKg      float64  `json:"weight_kg" binding:"required"`
	Age           int      `json:"age" binding:"required"`
	Gender        string   `json:"gender" binding:"required"`
	ActivityLevel string   `json:"activity_level" binding:"required"`
	Goal          string   `json:"goal" binding:"required"`
	WaistCm       *float64 `json:"waist_cm"`
	NeckCm        *float64 `json:"neck_cm"`
	HipCm         *float64 `json:"hip_cm"`
}

// CreateProfile godoc
// @Summary Create user profile
// @Description Create the authenticated user's profile; derived metabolic fields are computed from the raw attributes
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body profileRequest true "Profile data"
// @Success 201 {object} map[string]interface{} "Profile created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 409 {object} map[string]interface{} "Profile already exists"
// @Router /profile [post]
func (pc *ProfileController) CreateProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	if _, err := pc.repo.FindByUserID(userID.(uint)); err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"status":  "error",
			"message": "Profile already exists",
			"error":   "A profile has already been created for this user",
		})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create profile",
			"error":   err.Error(),
		})
		return
	}

	profile := models.Profile{
		UserID:        userID.(uint),
		HeightCm:      req.HeightCm,
		WeightKg:      req.WeightKg,
		Age:           req.Age,
		Gender:        req.Gender,
		ActivityLevel: req.ActivityLevel,
		Goal:          req.Goal,
		WaistCm:       req.WaistCm,
		NeckCm:        req.NeckCm,
		HipCm:         req.HipCm,
	}

	if err := applyDerivedFields(&profile); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := pc.repo.Create(&profile); err != nil {
		// The existence check above races with concurrent creates; the
		// unique index on user_id is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{
				"status":  "error",
				"message": "Profile already exists",
				"error":   "A profile has already been created for this user",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to create profile",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Profile created successfully",
		"data":    profile,
	})
}

// GetProfile godoc
// @Summary Get user profile
// @Description Retrieve the authenticated user's profile including derived fields
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Profile retrieved successfully"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /profile [get]
func (pc *ProfileController) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	profile, err := pc.repo.FindByUserID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Profile not found",
			"error":   "No profile exists for this user",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// PatchProfile godoc
// @Summary Patch user profile
// @Description Update goal and body measurements; an explicit null clears a measurement and with it the whole body-composition cluster. All derived fields are recomputed.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body map[string]interface{} true "Any subset of goal, waist_cm, neck_cm, hip_cm"
// @Success 200 {object} map[string]interface{} "Profile updated successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 404 {object} map[string]interface{} "Profile not found"
// @Router /profile [patch]
func (pc *ProfileController) PatchProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		respondUnauthorized(c)
		return
	}

	// Bind to a map so a key that is present with a null value (clear the
	// measurement) can be told apart from an absent key (leave it alone).
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request data",
			"error":   err.Error(),
		})
		return
	}

	profile, err := pc.repo.FindByUserID(userID.(uint))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Profile not found",
			"error":   "No profile exists for this user",
		})
		return
	}

	for key, value := range patch {
		switch key {
		case "goal":
			goal, ok := value.(string)
			if !ok {
				respondValidationError(c, &metabolic.ValidationError{Field: "goal", Message: "must be a string"})
				return
			}
			profile.Goal = goal
		case "waist_cm":
			if !patchMeasurement(&profile.WaistCm, value) {
				respondValidationError(c, &metabolic.ValidationError{Field: key, Message: "must be a number or null"})
				return
			}
		case "neck_cm":
			if !patchMeasurement(&profile.NeckCm, value) {
				respondValidationError(c, &metabolic.ValidationError{Field: key, Message: "must be a number or null"})
				return
			}
		case "hip_cm":
			if !patchMeasurement(&profile.HipCm, value) {
				respondValidationError(c, &metabolic.ValidationError{Field: key, Message: "must be a number or null"})
				return
			}
		default:
			respondValidationError(c, &metabolic.ValidationError{Field: key, Message: "is not an updatable field"})
			return
		}
	}

	if err := applyDerivedFields(profile); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := pc.repo.Update(profile); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "Failed to update profile",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// patchMeasurement applies a JSON patch value to an optional measurement
// field. nil clears it; a number sets it; anything else is rejected.
func patchMeasurement(field **float64, value interface{}) bool {
	if value == nil {
		*field = nil
		return true
	}
	v, ok := value.(float64)
	if !ok {
		return false
	}
	*field = &v
	return true
}

// applyDerivedFields recomputes every derived field from the raw attributes.
// Derived fields are views over the raw attributes; they are never written
// independently.
func applyDerivedFields(p *models.Profile) error {
	energy, err := metabolic.CalculateEnergy(p.HeightCm, p.WeightKg, p.Age, p.Gender, p.ActivityLevel, p.Goal)
	if err != nil {
		return err
	}

	composition, err := metabolic.CalculateComposition(p.HeightCm, p.WeightKg, p.Gender, p.WaistCm, p.NeckCm, p.HipCm)
	if err != nil {
		return err
	}

	p.BMR = energy.BMR
	p.TDEE = energy.TDEE
	p.DailyTarget = energy.DailyTarget
	p.MinCalories = energy.MinCalories
	p.BMI = composition.BMI
	p.HydrationMl = composition.HydrationMl
	p.BodyFatPct = composition.BodyFatPct
	p.LBM = composition.LBM
	p.FFMI = composition.FFMI
	p.ProteinMin = composition.ProteinMin
	p.ProteinMax = composition.ProteinMax
	return nil
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": "Unauthorized",
		"error":   "User ID not found in token",
	})
}

func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Invalid request data",
		"error":   err.Error(),
	})
}
