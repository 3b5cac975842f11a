package metabolic

// Daily ledger status values.
const (
	StatusDeficit     = "deficit"
	StatusMaintenance = "maintenance"
	StatusSurplus     = "surplus"
)

// statusTolerance is the symmetric band (kcal) around the daily target
// inside which a day counts as maintenance.
const statusTolerance = 100

// ClassifyStatus derives the ledger status from net calories and the
// profile's daily target. Exactly target ± tolerance still classifies as
// maintenance; one unit beyond flips it.
func ClassifyStatus(netCalories, dailyTarget float64) string {
	diff := netCalories - dailyTarget
	switch {
	case diff < -statusTolerance:
		return StatusDeficit
	case diff > statusTolerance:
		return StatusSurplus
	default:
		return StatusMaintenance
	}
}
