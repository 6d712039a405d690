package model

import "errors"

// Sentinel errors shared by repository backends
var (
	ErrRiskNotFound   = errors.New("risk not found")
	ErrPolicyNotFound = errors.New("scoring policy not found")
)
