package enums

import "fmt"

// DosageUnit represents the measurement unit for a logged dose.
type DosageUnit string

const (
	DosageUnitMG      DosageUnit = "mg"
	DosageUnitG       DosageUnit = "g"
	DosageUnitMCG     DosageUnit = "mcg"
	DosageUnitIU      DosageUnit = "IU"
	DosageUnitCapsule DosageUnit = "capsule"
	DosageUnitTablet  DosageUnit = "tablet"
	DosageUnitServing DosageUnit = "serving"
)

var validDosageUnits = []DosageUnit{
	DosageUnitMG,
	DosageUnitG,
	DosageUnitMCG,
	DosageUnitIU,
	DosageUnitCapsule,
	DosageUnitTablet,
	DosageUnitServing,
}

// String implements fmt.Stringer.
func (u DosageUnit) String() string {
	return string(u)
}

// IsValid reports whether the unit is recognized.
func (u DosageUnit) IsValid() bool {
	for _, candidate := range validDosageUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseDosageUnit converts a raw string into a DosageUnit.
func ParseDosageUnit(value string) (DosageUnit, error) {
	for _, candidate := range validDosageUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid dosage unit %q", value)
}
