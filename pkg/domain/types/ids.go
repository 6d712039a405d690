package types

import (
	"regexp"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

var methodIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// RiskID is the unique identifier of a risk record (UUID)
type RiskID string

// NewRiskID generates a new random RiskID
func NewRiskID() RiskID {
	return RiskID(uuid.New().String())
}

// Validate checks if the RiskID is a well-formed UUID
func (x RiskID) Validate() error {
	if x == "" {
		return goerr.New("risk ID cannot be empty")
	}
	if _, err := uuid.Parse(string(x)); err != nil {
		return goerr.Wrap(err, "risk ID must be a valid UUID", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of RiskID
func (x RiskID) String() string {
	return string(x)
}

// MethodID identifies an assessment method within a scoring policy
type MethodID string

// Validate checks if the MethodID is valid
func (x MethodID) Validate() error {
	if x == "" {
		return goerr.New("assessment method ID cannot be empty")
	}
	if !methodIDPattern.MatchString(string(x)) {
		return goerr.New("assessment method ID must be lowercase alphanumeric with underscores", goerr.V("id", x))
	}
	return nil
}

// String returns the string representation of MethodID
func (x MethodID) String() string {
	return string(x)
}

// OrgID identifies an organization. The empty value addresses the default
// organization, which keeps single-tenant deployments working without any
// tenant plumbing.
type OrgID string

// String returns the string representation of OrgID
func (x OrgID) String() string {
	return string(x)
}
