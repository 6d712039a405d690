package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Validation errors
	ErrValueOutOfRange = errors.New("likelihood or impact out of scale range")
	ErrUnknownMethod   = errors.New("assessment method is not active or does not exist")
	ErrInvalidPolicy   = errors.New("invalid scoring policy")
	ErrInvalidRisk     = errors.New("invalid risk")

	// Not found errors
	ErrNoRisksFound = errors.New("no risks found with the provided IDs")
)

// Context keys for error values
const (
	RiskIDKey   = "risk_id"
	MethodIDKey = "method_id"
	OrgIDKey    = "org_id"
)
