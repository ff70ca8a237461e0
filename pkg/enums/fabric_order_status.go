package enums

import "fmt"

// FabricOrderStatus tracks a fabric purchase-list entry.
type FabricOrderStatus string

const (
	FabricOrderStatusRequested FabricOrderStatus = "requested"
	FabricOrderStatusOrdered   FabricOrderStatus = "ordered"
	FabricOrderStatusReceived  FabricOrderStatus = "received"
	FabricOrderStatusCancelled FabricOrderStatus = "cancelled"
)

var validFabricOrderStatuses = []FabricOrderStatus{
	FabricOrderStatusRequested,
	FabricOrderStatusOrdered,
	FabricOrderStatusReceived,
	FabricOrderStatusCancelled,
}

// String implements fmt.Stringer.
func (f FabricOrderStatus) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FabricOrderStatus.
func (f FabricOrderStatus) IsValid() bool {
	for _, candidate := range validFabricOrderStatuses {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFabricOrderStatus converts raw input into a FabricOrderStatus.
func ParseFabricOrderStatus(value string) (FabricOrderStatus, error) {
	for _, candidate := range validFabricOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fabric order status %q", value)
}
