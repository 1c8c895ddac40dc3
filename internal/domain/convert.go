package domain

// Volume units for feeding amounts. Records always store millilitres.
const (
	UnitML = "ml"
	UnitOz = "oz"
)

const mlPerOz = 29.5735295625

// ValidVolumeUnit reports whether u is a supported volume unit.
func ValidVolumeUnit(u string) bool {
	return u == UnitML || u == UnitOz
}

// ConvertVolume converts an amount between "ml" and "oz" (US fluid ounces).
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertVolume(v float64, from, to string) float64 {
	if from == to {
		return v
	}
	if from == UnitML && to == UnitOz {
		return v / mlPerOz
	}
	if from == UnitOz && to == UnitML {
		return v * mlPerOz
	}
	return v
}
