package types

import "github.com/m-mizutani/goerr/v2"

// AssessmentType selects which of the three tracked risk states an
// assessment applies to.
type AssessmentType string

const (
	AssessmentInherent AssessmentType = "inherent"
	AssessmentCurrent  AssessmentType = "current"
	AssessmentTarget   AssessmentType = "target"
)

// Validate checks if the AssessmentType is a known value
func (x AssessmentType) Validate() error {
	switch x {
	case AssessmentInherent, AssessmentCurrent, AssessmentTarget:
		return nil
	}
	return goerr.New("invalid assessment type", goerr.V("type", x))
}

// String returns the string representation of AssessmentType
func (x AssessmentType) String() string {
	return string(x)
}
