package enums

import "fmt"

// GarmentType identifies which garment an order item or measurement covers.
type GarmentType string

const (
	GarmentTypeJacket GarmentType = "jacket"
	GarmentTypeShirt  GarmentType = "shirt"
	GarmentTypePant   GarmentType = "pant"
)

var validGarmentTypes = []GarmentType{
	GarmentTypeJacket,
	GarmentTypeShirt,
	GarmentTypePant,
}

// String implements fmt.Stringer.
func (g GarmentType) String() string {
	return string(g)
}

// IsValid reports whether the value is a known GarmentType.
func (g GarmentType) IsValid() bool {
	for _, candidate := range validGarmentTypes {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGarmentType converts raw input into a GarmentType.
func ParseGarmentType(value string) (GarmentType, error) {
	for _, candidate := range validGarmentTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid garment type %q", value)
}
