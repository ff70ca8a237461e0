package enums

import "fmt"

// MeasurementKind names one of the six measurement tables. The "final"
// variants hold post-fitting adjusted values.
type MeasurementKind string

const (
	MeasurementKindJacket      MeasurementKind = "jacket"
	MeasurementKindShirt       MeasurementKind = "shirt"
	MeasurementKindPant        MeasurementKind = "pant"
	MeasurementKindJacketFinal MeasurementKind = "jacket-final"
	MeasurementKindShirtFinal  MeasurementKind = "shirt-final"
	MeasurementKindPantFinal   MeasurementKind = "pant-final"
)

var validMeasurementKinds = []MeasurementKind{
	MeasurementKindJacket,
	MeasurementKindShirt,
	MeasurementKindPant,
	MeasurementKindJacketFinal,
	MeasurementKindShirtFinal,
	MeasurementKindPantFinal,
}

// String implements fmt.Stringer.
func (m MeasurementKind) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MeasurementKind.
func (m MeasurementKind) IsValid() bool {
	for _, candidate := range validMeasurementKinds {
		if candidate == m {
			return true
		}
	}
	return false
}

// IsFinal reports whether the kind is a post-fitting variant.
func (m MeasurementKind) IsFinal() bool {
	switch m {
	case MeasurementKindJacketFinal, MeasurementKindShirtFinal, MeasurementKindPantFinal:
		return true
	}
	return false
}

// ParseMeasurementKind converts raw input into a MeasurementKind.
func ParseMeasurementKind(value string) (MeasurementKind, error) {
	for _, candidate := range validMeasurementKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid measurement kind %q", value)
}
