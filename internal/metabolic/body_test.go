package metabolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestCalculateCompositionWithoutMeasurements(t *testing.T) {
	comp, err := CalculateComposition(180, 80, "male", nil, nil, nil)

	assert.NoError(t, err)
	assert.Equal(t, 24.7, comp.BMI)
	assert.Equal(t, 2800.0, comp.HydrationMl)
	assert.Nil(t, comp.BodyFatPct)
	assert.Nil(t, comp.LBM)
	assert.Nil(t, comp.FFMI)
	assert.Nil(t, comp.ProteinMin)
	assert.Nil(t, comp.ProteinMax)
}

func TestCalculateCompositionMale(t *testing.T) {
	comp, err := CalculateComposition(180, 80, "male", floatPtr(84), floatPtr(38), nil)

	assert.NoError(t, err)
	assert.NotNil(t, comp.BodyFatPct)
	assert.InDelta(t, 15.3, *comp.BodyFatPct, 0.1)
	assert.InDelta(t, 67.7, *comp.LBM, 0.1)
	assert.InDelta(t, 20.9, *comp.FFMI, 0.1)
	assert.InDelta(t, 108, *comp.ProteinMin, 1)
	assert.InDelta(t, 149, *comp.ProteinMax, 1)
}

func TestCalculateCompositionFemale(t *testing.T) {
	comp, err := CalculateComposition(165, 60, "female", floatPtr(75), floatPtr(33), floatPtr(95))

	assert.NoError(t, err)
	assert.NotNil(t, comp.BodyFatPct)
	assert.InDelta(t, 26.9, *comp.BodyFatPct, 0.1)

	lbm := 60 * (1 - *comp.BodyFatPct/100)
	assert.InDelta(t, lbm, *comp.LBM, 0.1)
}

// The derived cluster has a single presence condition: missing any required
// measurement leaves every field nil, never a partial subset.
func TestCalculateCompositionClusterPresence(t *testing.T) {
	tests := []struct {
		name   string
		gender string
		waist  *float64
		neck   *float64
		hip    *float64
	}{
		{"male missing waist", "male", nil, floatPtr(38), nil},
		{"male missing neck", "male", floatPtr(84), nil, nil},
		{"female missing hip", "female", floatPtr(75), floatPtr(33), nil},
		{"female missing waist", "female", nil, floatPtr(33), floatPtr(95)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comp, err := CalculateComposition(170, 70, tt.gender, tt.waist, tt.neck, tt.hip)

			assert.NoError(t, err)
			assert.Nil(t, comp.BodyFatPct)
			assert.Nil(t, comp.LBM)
			assert.Nil(t, comp.FFMI)
			assert.Nil(t, comp.ProteinMin)
			assert.Nil(t, comp.ProteinMax)
		})
	}
}

func TestCalculateCompositionMaleHipIgnored(t *testing.T) {
	withHip, err := CalculateComposition(180, 80, "male", floatPtr(84), floatPtr(38), floatPtr(95))
	assert.NoError(t, err)

	withoutHip, err := CalculateComposition(180, 80, "male", floatPtr(84), floatPtr(38), nil)
	assert.NoError(t, err)

	assert.Equal(t, *withoutHip.BodyFatPct, *withHip.BodyFatPct)
}

func TestCalculateCompositionInvalidMeasurements(t *testing.T) {
	// waist <= neck has no log10 domain for the male formula.
	_, err := CalculateComposition(180, 80, "male", floatPtr(38), floatPtr(40), nil)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "waist_cm", validationErr.Field)

	_, err = CalculateComposition(180, 80, "male", floatPtr(-5), floatPtr(38), nil)
	assert.ErrorAs(t, err, &validationErr)
}
