package metabolic

import "math"

// hydrationMlPerKg is the daily water intake target per kg of body weight.
const hydrationMlPerKg = 35

// Protein intake range in g per kg of lean body mass (resistance-training
// evidence base).
const (
	proteinMinPerKgLBM = 1.6
	proteinMaxPerKgLBM = 2.2
)

// Composition is the derived body-composition output. BMI and HydrationMl
// are always present; the remaining fields form one cluster that is either
// fully populated (when the required circumference measurements exist) or
// fully nil. They are never partially populated.
type Composition struct {
	BMI         float64
	HydrationMl float64
	BodyFatPct  *float64
	LBM         *float64
	FFMI        *float64
	ProteinMin  *float64
	ProteinMax  *float64
}

// CalculateComposition derives BMI, the hydration target and, when waist
// and neck (and hip, for female) measurements are present, the Navy-method
// body-fat cluster. A missing measurement leaves the whole cluster nil.
func CalculateComposition(heightCm, weightKg float64, gender string, waistCm, neckCm, hipCm *float64) (Composition, error) {
	if heightCm <= 0 {
		return Composition{}, &ValidationError{Field: "height_cm", Message: "must be positive"}
	}

	heightM := heightCm / 100
	out := Composition{
		BMI:         round1(weightKg / (heightM * heightM)),
		HydrationMl: math.Round(weightKg * hydrationMlPerKg),
	}

	if waistCm == nil || neckCm == nil {
		return out, nil
	}
	if gender == "female" && hipCm == nil {
		return out, nil
	}

	bodyFat, err := navyBodyFat(heightCm, gender, *waistCm, *neckCm, hipCm)
	if err != nil {
		return Composition{}, err
	}

	lbm := weightKg * (1 - bodyFat/100)
	// FFMI with the standard height normalization toward 1.8 m.
	ffmi := lbm/(heightM*heightM) + 6.1*(1.8-heightM)
	proteinMin := math.Round(lbm * proteinMinPerKgLBM)
	proteinMax := math.Round(lbm * proteinMaxPerKgLBM)

	bodyFat = round1(bodyFat)
	lbm = round1(lbm)
	ffmi = round1(ffmi)

	out.BodyFatPct = &bodyFat
	out.LBM = &lbm
	out.FFMI = &ffmi
	out.ProteinMin = &proteinMin
	out.ProteinMax = &proteinMax
	return out, nil
}

// navyBodyFat implements the US Navy circumference method. All inputs in cm.
func navyBodyFat(heightCm float64, gender string, waistCm, neckCm float64, hipCm *float64) (float64, error) {
	if waistCm <= 0 {
		return 0, &ValidationError{Field: "waist_cm", Message: "must be positive"}
	}
	if neckCm <= 0 {
		return 0, &ValidationError{Field: "neck_cm", Message: "must be positive"}
	}

	var bodyFat float64
	if gender == "male" {
		if waistCm <= neckCm {
			return 0, &ValidationError{Field: "waist_cm", Message: "must be greater than neck_cm"}
		}
		bodyFat = 495/(1.0324-0.19077*math.Log10(waistCm-neckCm)+0.15456*math.Log10(heightCm)) - 450
	} else {
		if hipCm == nil || *hipCm <= 0 {
			return 0, &ValidationError{Field: "hip_cm", Message: "must be positive"}
		}
		if waistCm+*hipCm <= neckCm {
			return 0, &ValidationError{Field: "waist_cm", Message: "waist plus hip must be greater than neck_cm"}
		}
		bodyFat = 495/(1.29579-0.35004*math.Log10(waistCm+*hipCm-neckCm)+0.22100*math.Log10(heightCm)) - 450
	}

	// Clamp to a sane percentage; extreme circumference ratios can push the
	// formula outside [0, 100].
	if bodyFat < 0 {
		bodyFat = 0
	}
	if bodyFat > 100 {
		bodyFat = 100
	}
	return bodyFat, nil
}
