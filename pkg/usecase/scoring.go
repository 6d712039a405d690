package usecase

import (
	"context"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/grclab/riskscope/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Score computes the risk score from ordinal likelihood and impact inputs.
// Both inputs must be positive; range enforcement against the configured
// scales is the assessment validator's job.
func Score(likelihood, impact int) int {
	return likelihood * impact
}

// Classify returns the first policy band containing the score, or nil when
// the configured bands leave a gap (or no policy is available). It never
// fails: callers that need a guaranteed band use ClassifyWithFallback.
func Classify(score int, policy *model.ScoringPolicy) *model.RiskLevelBand {
	if policy == nil {
		return nil
	}
	return policy.MatchBand(score)
}

// ClassifyWithFallback classifies against the policy and falls back to the
// builtin default bands when no configured band matches. The fallback scans
// defaults from the top so that scores beyond the default range still map to
// the most severe band.
func ClassifyWithFallback(score int, policy *model.ScoringPolicy) model.RiskLevelBand {
	if band := Classify(score, policy); band != nil {
		return *band
	}

	defaults := model.DefaultRiskLevels()
	for i := len(defaults) - 1; i > 0; i-- {
		if score >= defaults[i].MinScore {
			return defaults[i]
		}
	}
	return defaults[0]
}

// ExceedsAppetite reports whether the score exceeds the organization's risk
// appetite. Always false while the appetite check is disabled.
func ExceedsAppetite(score int, policy *model.ScoringPolicy) bool {
	if policy == nil || !policy.AppetiteEnabled {
		return false
	}
	return score > policy.MaxAcceptableScore
}

// CheckAppetite evaluates a score against the risk appetite. Escalation is
// sourced from the matching configured band; no band match means no
// escalation.
func CheckAppetite(score int, policy *model.ScoringPolicy) model.AppetiteCheck {
	check := model.AppetiteCheck{
		Score:   score,
		Exceeds: ExceedsAppetite(score, policy),
	}
	if policy != nil {
		check.MaxAcceptable = policy.MaxAcceptableScore
		if band := Classify(score, policy); band != nil {
			check.RequiresEscalation = band.Escalation
		}
	}
	return check
}

// ScaleSource names which step of the fallback chain supplied the scale
// bounds, so each fallback can be asserted independently.
type ScaleSource string

const (
	ScaleSourceMethod        ScaleSource = "method"
	ScaleSourceDefaultMethod ScaleSource = "default_method"
	ScaleSourceBuiltin       ScaleSource = "builtin"
)

// ScaleBounds is the resolved upper bound of the likelihood/impact scales
type ScaleBounds struct {
	MaxLikelihood int
	MaxImpact     int
	Source        ScaleSource
}

// builtinScaleBounds keeps the engine usable when the settings store is down
func builtinScaleBounds() ScaleBounds {
	return ScaleBounds{
		MaxLikelihood: model.DefaultScaleSize,
		MaxImpact:     model.DefaultScaleSize,
		Source:        ScaleSourceBuiltin,
	}
}

// ResolveScaleBounds walks the fallback chain: the named method, then the
// policy's default method, then the builtin 5-point scale. A method ID that
// does not resolve to an active method is an error; an absent default method
// falls through to the builtin.
func ResolveScaleBounds(policy *model.ScoringPolicy, methodID types.MethodID) (ScaleBounds, error) {
	if policy == nil {
		return builtinScaleBounds(), nil
	}

	if methodID != "" {
		method := policy.ActiveMethod(methodID)
		if method == nil {
			return ScaleBounds{}, goerr.Wrap(ErrUnknownMethod, "unknown assessment method",
				goerr.V(MethodIDKey, methodID))
		}
		return ScaleBounds{
			MaxLikelihood: method.LikelihoodScale,
			MaxImpact:     method.ImpactScale,
			Source:        ScaleSourceMethod,
		}, nil
	}

	if method := policy.DefaultMethod(); method != nil {
		return ScaleBounds{
			MaxLikelihood: method.LikelihoodScale,
			MaxImpact:     method.ImpactScale,
			Source:        ScaleSourceDefaultMethod,
		}, nil
	}

	return builtinScaleBounds(), nil
}

// ScoringUseCase validates assessment inputs against the organization's
// scoring policy.
type ScoringUseCase struct {
	settings *SettingsUseCase
}

func NewScoringUseCase(settings *SettingsUseCase) *ScoringUseCase {
	return &ScoringUseCase{settings: settings}
}

// ValidateAssessment checks likelihood and impact against the scale of the
// named assessment method (or the default method when omitted). When the
// settings store is unreachable the builtin 5-point scale applies, so
// validation keeps working through a settings outage.
func (uc *ScoringUseCase) ValidateAssessment(ctx context.Context, orgID types.OrgID, input model.AssessmentInput) error {
	policy := uc.settings.policyOrNil(ctx, orgID)

	bounds, err := ResolveScaleBounds(policy, input.MethodID)
	if err != nil {
		return err
	}

	if input.Likelihood < 1 || input.Likelihood > bounds.MaxLikelihood {
		return goerr.Wrap(ErrValueOutOfRange, "likelihood out of range",
			goerr.V("likelihood", input.Likelihood),
			goerr.V("max", bounds.MaxLikelihood),
			goerr.V("scale_source", bounds.Source))
	}
	if input.Impact < 1 || input.Impact > bounds.MaxImpact {
		return goerr.Wrap(ErrValueOutOfRange, "impact out of range",
			goerr.V("impact", input.Impact),
			goerr.V("max", bounds.MaxImpact),
			goerr.V("scale_source", bounds.Source))
	}

	return nil
}

// policyOrNil fetches the policy but degrades to nil on failure so that
// scoring and classification stay available when the settings store is down.
func (uc *SettingsUseCase) policyOrNil(ctx context.Context, orgID types.OrgID) *model.ScoringPolicy {
	policy, err := uc.GetPolicy(ctx, orgID)
	if err != nil {
		logging.From(ctx).Warn("scoring policy unavailable, using builtin defaults",
			"org_id", orgID, "error", err.Error())
		return nil
	}
	return policy
}
