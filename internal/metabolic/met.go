package metabolic

import "math"

// metValues maps exercise types to their MET (Metabolic Equivalent of Task)
// value. Source: Compendium of Physical Activities (Ainsworth et al., 2011).
// The table is package-private and never mutated; unknown types fall back to
// the conservative "other" value because the UI offers a free-form category.
var metValues = map[string]float64{
	"walking_slow":             2.8,
	"walking":                  3.5,
	"walking_fast":             4.3,
	"jogging":                  7.0,
	"running":                  9.8,
	"running_fast":             11.5,
	"cycling_light":            4.0,
	"cycling":                  6.8,
	"cycling_vigorous":         10.0,
	"swimming":                 6.0,
	"swimming_vigorous":        9.8,
	"weight_training":          3.5,
	"weight_training_vigorous": 6.0,
	"hiit":                     8.0,
	"elliptical":               5.0,
	"rowing_machine":           7.0,
	"stair_climbing":           8.8,
	"jump_rope":                10.0,
	"yoga":                     2.5,
	"pilates":                  3.0,
	"stretching":               2.3,
	"basketball":               6.5,
	"soccer":                   7.0,
	"tennis":                   7.3,
	"dancing":                  4.8,
	"hiking":                   6.0,
	"other":                    4.0,
}

// MET returns the MET value for an exercise type, falling back to "other"
// for unknown or custom types.
func MET(exerciseType string) float64 {
	if met, ok := metValues[exerciseType]; ok {
		return met
	}
	return metValues["other"]
}

// EstimateExerciseCalories estimates kcal burned as
// MET × weight_kg × (duration_min / 60), rounded to the nearest whole kcal.
// This single function backs both the client preview and the authoritative
// recording, so the two can never diverge.
func EstimateExerciseCalories(exerciseType string, durationMin int, weightKg float64) float64 {
	return math.Round(MET(exerciseType) * weightKg * float64(durationMin) / 60)
}
