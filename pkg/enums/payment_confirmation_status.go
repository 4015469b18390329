package enums

import "fmt"

// PaymentConfirmationStatus is the review state of an uploaded payment proof.
// PENDING is the only non-terminal state.
type PaymentConfirmationStatus string

const (
	PaymentConfirmationStatusPending   PaymentConfirmationStatus = "PENDING"
	PaymentConfirmationStatusConfirmed PaymentConfirmationStatus = "CONFIRMED"
	PaymentConfirmationStatusRejected  PaymentConfirmationStatus = "REJECTED"
)

var validPaymentConfirmationStatuses = []PaymentConfirmationStatus{
	PaymentConfirmationStatusPending,
	PaymentConfirmationStatusConfirmed,
	PaymentConfirmationStatusRejected,
}

// String implements fmt.Stringer.
func (p PaymentConfirmationStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known confirmation status.
func (p PaymentConfirmationStatus) IsValid() bool {
	for _, candidate := range validPaymentConfirmationStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (p PaymentConfirmationStatus) IsTerminal() bool {
	return p == PaymentConfirmationStatusConfirmed || p == PaymentConfirmationStatusRejected
}

// ParsePaymentConfirmationStatus converts raw input into a PaymentConfirmationStatus.
func ParsePaymentConfirmationStatus(value string) (PaymentConfirmationStatus, error) {
	for _, candidate := range validPaymentConfirmationStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment confirmation status %q", value)
}
