package enums

import "fmt"

// ProductionStage tracks where an order sits in the workshop workflow.
type ProductionStage string

const (
	ProductionStagePending   ProductionStage = "pending"
	ProductionStageCutting   ProductionStage = "cutting"
	ProductionStageStitching ProductionStage = "stitching"
	ProductionStageFinishing ProductionStage = "finishing"
	ProductionStageReady     ProductionStage = "ready"
	ProductionStageDelivered ProductionStage = "delivered"
)

var validProductionStages = []ProductionStage{
	ProductionStagePending,
	ProductionStageCutting,
	ProductionStageStitching,
	ProductionStageFinishing,
	ProductionStageReady,
	ProductionStageDelivered,
}

// String implements fmt.Stringer.
func (p ProductionStage) String() string {
	return string(p)
}

// IsValid reports whether the value is a known ProductionStage.
func (p ProductionStage) IsValid() bool {
	for _, candidate := range validProductionStages {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductionStage converts raw input into a ProductionStage.
func ParseProductionStage(value string) (ProductionStage, error) {
	for _, candidate := range validProductionStages {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid production stage %q", value)
}
