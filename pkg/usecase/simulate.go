package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// effectivenessDampening caps how much control effectiveness can reduce the
// raw score: at 100% effectiveness the score halves, never reaching zero.
const effectivenessDampening = 0.5

// additionalControlGain is the effectiveness percentage points each
// hypothetical additional control contributes.
const additionalControlGain = 10

// SimulateWhatIf projects a risk's score and level under a hypothetical
// change without persisting anything.
func (uc *AnalysisUseCase) SimulateWhatIf(ctx context.Context, orgID types.OrgID, req *model.SimulationRequest) (*model.SimulationResult, error) {
	risk, err := uc.repo.Risk().Get(ctx, req.RiskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to resolve risk for simulation", goerr.V(RiskIDKey, req.RiskID))
	}

	policy := uc.settings.policyOrNil(ctx, orgID)

	baseLikelihood, baseImpact := risk.BaselineAssessment()
	baseScore := Score(baseLikelihood, baseImpact)
	baseLevel := ClassifyWithFallback(baseScore, policy).Level
	baseEffectiveness := risk.EffectivenessValue()

	simLikelihood, simImpact := baseLikelihood, baseImpact
	if req.SimulatedLikelihood != nil {
		simLikelihood = *req.SimulatedLikelihood
	}
	if req.SimulatedImpact != nil {
		simImpact = *req.SimulatedImpact
	}

	simEffectiveness := baseEffectiveness
	if req.SimulatedControlEffectiveness != nil {
		simEffectiveness = *req.SimulatedControlEffectiveness
	}
	// Additional controls stack on top of the (possibly overridden)
	// effectiveness, capped at 100%.
	if req.AdditionalControls > 0 {
		simEffectiveness = min(100, simEffectiveness+req.AdditionalControls*additionalControlGain)
	}

	rawScore := Score(simLikelihood, simImpact)
	reductionFactor := float64(simEffectiveness) / 100 * effectivenessDampening
	simScore := int(math.Round(float64(rawScore) * (1 - reductionFactor)))
	if simScore < 1 {
		simScore = 1
	}
	simLevel := ClassifyWithFallback(simScore, policy).Level

	exceedsAppetite := ExceedsAppetite(simScore, policy)

	changePct := 0
	if baseScore > 0 {
		changePct = roundPct(float64(simScore-baseScore) / float64(baseScore))
	}

	threshold := 0
	baselineOutside := false
	if policy != nil {
		threshold = policy.MaxAcceptableScore
		baselineOutside = policy.AppetiteEnabled && baseScore > policy.MaxAcceptableScore
	}

	recommendation := buildRecommendation(recommendationInput{
		baselineScore:           baseScore,
		simulatedScore:          simScore,
		baselineLevel:           types.RiskLevel(baseLevel),
		simulatedLevel:          types.RiskLevel(simLevel),
		exceedsAppetite:         exceedsAppetite,
		baselineOutsideAppetite: baselineOutside,
		additionalControls:      req.AdditionalControls,
		effectivenessOverride:   req.SimulatedControlEffectiveness,
	})

	result := &model.SimulationResult{
		Original: model.SimulationState{
			Likelihood:           baseLikelihood,
			Impact:               baseImpact,
			Score:                baseScore,
			Level:                baseLevel,
			ControlEffectiveness: baseEffectiveness,
		},
		Simulated: model.SimulationState{
			Likelihood:           simLikelihood,
			Impact:               simImpact,
			Score:                simScore,
			Level:                simLevel,
			ControlEffectiveness: simEffectiveness,
		},
		ImpactAnalysis: model.ImpactAnalysis{
			ScoreChange:           simScore - baseScore,
			ScoreChangePercentage: changePct,
			LevelChanged:          baseLevel != simLevel,
			OldLevel:              baseLevel,
			NewLevel:              simLevel,
			ExceedsAppetite:       exceedsAppetite,
			AppetiteThreshold:     threshold,
			Recommendation:        recommendation,
		},
	}

	if band := Classify(simScore, policy); band != nil {
		result.LevelDetails = &model.LevelDetails{
			Color:              band.Color,
			Description:        band.Description,
			ResponseTime:       band.ResponseTime,
			RequiresEscalation: band.Escalation,
		}
	}

	return result, nil
}

// BatchWhatIf evaluates several scenarios against one risk. Scenarios run
// independently and sequentially; the result order matches the input order.
func (uc *AnalysisUseCase) BatchWhatIf(ctx context.Context, orgID types.OrgID, req *model.BatchSimulationRequest) ([]*model.SimulationResult, error) {
	results := make([]*model.SimulationResult, 0, len(req.Scenarios))
	for i, scenario := range req.Scenarios {
		result, err := uc.SimulateWhatIf(ctx, orgID, &model.SimulationRequest{
			RiskID:   req.RiskID,
			Scenario: scenario,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "scenario simulation failed", goerr.V("scenario_index", i))
		}
		results = append(results, result)
	}
	return results, nil
}

func roundPct(ratio float64) int {
	return int(math.Round(ratio * 100))
}

type recommendationInput struct {
	baselineScore           int
	simulatedScore          int
	baselineLevel           types.RiskLevel
	simulatedLevel          types.RiskLevel
	exceedsAppetite         bool
	baselineOutsideAppetite bool
	additionalControls      int
	effectivenessOverride   *int
}

type recommendationRule struct {
	applies  func(in recommendationInput) bool
	fragment func(in recommendationInput) string
}

// recommendationRules is evaluated top to bottom; fragments of all matching
// rules are joined in order. Both ordering and inclusion conditions are load
// bearing for deterministic output.
var recommendationRules = []recommendationRule{
	{
		applies: func(in recommendationInput) bool { return in.simulatedScore < in.baselineScore },
		fragment: func(in recommendationInput) string {
			pct := roundPct(float64(in.baselineScore-in.simulatedScore) / float64(in.baselineScore))
			return fmt.Sprintf("This scenario would reduce risk by %d%%.", pct)
		},
	},
	{
		applies: func(in recommendationInput) bool { return in.simulatedScore > in.baselineScore },
		fragment: func(in recommendationInput) string {
			pct := roundPct(float64(in.simulatedScore-in.baselineScore) / float64(in.baselineScore))
			return fmt.Sprintf("Warning: This scenario would increase risk by %d%%.", pct)
		},
	},
	{
		applies: func(in recommendationInput) bool {
			return in.baselineLevel != in.simulatedLevel &&
				in.baselineLevel.Severe() && in.simulatedLevel.Moderate()
		},
		fragment: func(in recommendationInput) string {
			return fmt.Sprintf("Risk level would improve from %s to %s.", in.baselineLevel, in.simulatedLevel)
		},
	},
	{
		applies: func(in recommendationInput) bool {
			return in.baselineLevel != in.simulatedLevel &&
				in.baselineLevel.Moderate() && in.simulatedLevel.Severe()
		},
		fragment: func(in recommendationInput) string {
			return fmt.Sprintf("Warning: Risk level would worsen from %s to %s.", in.baselineLevel, in.simulatedLevel)
		},
	},
	{
		applies: func(in recommendationInput) bool { return in.exceedsAppetite },
		fragment: func(in recommendationInput) string {
			return "The simulated risk still exceeds organizational risk appetite. Additional controls or mitigation needed."
		},
	},
	{
		applies: func(in recommendationInput) bool {
			return !in.exceedsAppetite && in.baselineOutsideAppetite
		},
		fragment: func(in recommendationInput) string {
			return "This scenario would bring the risk within acceptable appetite levels."
		},
	},
	{
		applies: func(in recommendationInput) bool { return in.additionalControls > 0 },
		fragment: func(in recommendationInput) string {
			return fmt.Sprintf("Adding %d control(s) could achieve this result.", in.additionalControls)
		},
	},
	{
		applies: func(in recommendationInput) bool {
			return in.effectivenessOverride != nil && *in.effectivenessOverride > 50
		},
		fragment: func(in recommendationInput) string {
			return "Focus on improving control effectiveness through testing and monitoring."
		},
	},
}

func buildRecommendation(in recommendationInput) string {
	var fragments []string
	for _, rule := range recommendationRules {
		if rule.applies(in) {
			fragments = append(fragments, rule.fragment(in))
		}
	}
	if len(fragments) == 0 {
		return "No significant changes detected in this scenario."
	}
	return strings.Join(fragments, " ")
}
