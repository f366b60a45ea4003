package enums

import "fmt"

// IntakeSource tags which id space an intake log's supplement reference
// points into.
type IntakeSource string

const (
	IntakeSourcePantry IntakeSource = "pantry"
	IntakeSourceCustom IntakeSource = "custom"
)

var validIntakeSources = []IntakeSource{
	IntakeSourcePantry,
	IntakeSourceCustom,
}

// String implements fmt.Stringer.
func (s IntakeSource) String() string {
	return string(s)
}

// IsValid reports whether the source is recognized.
func (s IntakeSource) IsValid() bool {
	for _, candidate := range validIntakeSources {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseIntakeSource converts a raw string into an IntakeSource.
func ParseIntakeSource(value string) (IntakeSource, error) {
	for _, candidate := range validIntakeSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid intake source %q", value)
}
