package enums

import "fmt"

// ImageStatus describes whether a fabric's stored object key has confirmed
// content behind it. A key is written when the upload URL is issued, so it
// stays pending until the client confirms the upload.
type ImageStatus string

const (
	ImageStatusPending ImageStatus = "pending"
	ImageStatusReady   ImageStatus = "ready"
)

var validImageStatuses = []ImageStatus{
	ImageStatusPending,
	ImageStatusReady,
}

// String implements fmt.Stringer.
func (i ImageStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known ImageStatus.
func (i ImageStatus) IsValid() bool {
	for _, candidate := range validImageStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseImageStatus converts raw input into an ImageStatus.
func ParseImageStatus(value string) (ImageStatus, error) {
	for _, candidate := range validImageStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid image status %q", value)
}
