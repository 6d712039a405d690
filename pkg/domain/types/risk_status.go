package types

import "github.com/m-mizutani/goerr/v2"

// RiskStatus represents the lifecycle state of a risk record
type RiskStatus string

const (
	RiskStatusIdentified RiskStatus = "identified"
	RiskStatusAssessed   RiskStatus = "assessed"
	RiskStatusTreated    RiskStatus = "treated"
	RiskStatusMonitored  RiskStatus = "monitored"
	RiskStatusAccepted   RiskStatus = "accepted"
	RiskStatusClosed     RiskStatus = "closed"
)

// Validate checks if the RiskStatus is a known value
func (x RiskStatus) Validate() error {
	switch x {
	case RiskStatusIdentified, RiskStatusAssessed, RiskStatusTreated,
		RiskStatusMonitored, RiskStatusAccepted, RiskStatusClosed:
		return nil
	}
	return goerr.New("invalid risk status", goerr.V("status", x))
}

// String returns the string representation of RiskStatus
func (x RiskStatus) String() string {
	return string(x)
}
