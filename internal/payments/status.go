package payments

import (
	"strings"

	"aerobook/internal/shared/apperrors"
)

// Status is the canonical payment reconciliation state: PENDING moves to
// exactly one of SETTLEMENT, CANCEL or EXPIRE and never changes again.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusSettlement Status = "SETTLEMENT"
	StatusCancel     Status = "CANCEL"
	StatusExpire     Status = "EXPIRE"
)

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusSettlement || s == StatusCancel || s == StatusExpire
}

// MapGatewayStatus maps the gateway's transaction_status vocabulary onto the
// canonical set. Unrecognized values are rejected rather than defaulted;
// "pending" maps to PENDING so a pending notification is acknowledged
// without any transition.
func MapGatewayStatus(transactionStatus string) (Status, error) {
	switch strings.ToLower(transactionStatus) {
	case "settlement", "capture":
		return StatusSettlement, nil
	case "cancel", "deny":
		return StatusCancel, nil
	case "expire":
		return StatusExpire, nil
	case "pending":
		return StatusPending, nil
	default:
		return "", apperrors.Validation("invalid transaction status")
	}
}
