package enums

import "fmt"

// SaleStatus tracks the lifecycle of a recorded sale. Transitions away from
// PENDING are driven by payment confirmation review, not by the sale endpoints.
type SaleStatus string

const (
	SaleStatusPending    SaleStatus = "PENDING"
	SaleStatusProcessing SaleStatus = "PROCESSING"
	SaleStatusCompleted  SaleStatus = "COMPLETED"
	SaleStatusCancelled  SaleStatus = "CANCELLED"
)

var validSaleStatuses = []SaleStatus{
	SaleStatusPending,
	SaleStatusProcessing,
	SaleStatusCompleted,
	SaleStatusCancelled,
}

// String implements fmt.Stringer.
func (s SaleStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known sale status.
func (s SaleStatus) IsValid() bool {
	for _, candidate := range validSaleStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSaleStatus converts raw input into a SaleStatus.
func ParseSaleStatus(value string) (SaleStatus, error) {
	for _, candidate := range validSaleStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sale status %q", value)
}
