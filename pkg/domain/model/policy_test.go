package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grclab/riskscope/pkg/domain/model"
)

func TestScoringPolicy_Validate(t *testing.T) {
	t.Run("default policy is valid", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		gt.NoError(t, policy.Validate())
	})

	t.Run("bands must start at 1", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.RiskLevels[0].MinScore = 2
		gt.Error(t, policy.Validate())
	})

	t.Run("gap between bands is rejected", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.RiskLevels[1].MinScore = 7 // leaves score 6 uncovered
		gt.Error(t, policy.Validate())
	})

	t.Run("overlapping bands are rejected", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.RiskLevels[1].MinScore = 5
		gt.Error(t, policy.Validate())
	})

	t.Run("bands must cover the full score range", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.RiskLevels[3].MaxScore = 24 // default method scale is 5x5
		gt.Error(t, policy.Validate())
	})

	t.Run("exactly one default method required", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.AssessmentMethods[1].IsDefault = true
		gt.Error(t, policy.Validate())

		policy = model.NewDefaultPolicy("")
		policy.AssessmentMethods[0].IsDefault = false
		gt.Error(t, policy.Validate())
	})

	t.Run("default method must be active", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.AssessmentMethods[0].IsActive = false
		gt.Error(t, policy.Validate())
	})

	t.Run("duplicate method IDs are rejected", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.AssessmentMethods[1].ID = policy.AssessmentMethods[0].ID
		gt.Error(t, policy.Validate())
	})

	t.Run("scale size bounds", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.AssessmentMethods[1].LikelihoodScale = 2
		gt.Error(t, policy.Validate())

		policy = model.NewDefaultPolicy("")
		policy.AssessmentMethods[1].ImpactScale = 11
		gt.Error(t, policy.Validate())
	})

	t.Run("max acceptable score must be positive", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		policy.MaxAcceptableScore = 0
		gt.Error(t, policy.Validate())
	})
}

func TestScoringPolicy_MatchBand(t *testing.T) {
	policy := model.NewDefaultPolicy("")

	cases := []struct {
		score int
		level string
	}{
		{1, "Low"},
		{5, "Low"},
		{6, "Medium"},
		{11, "Medium"},
		{12, "High"},
		{19, "High"},
		{20, "Critical"},
		{25, "Critical"},
	}
	for _, tc := range cases {
		band := policy.MatchBand(tc.score)
		gt.Value(t, band).NotNil()
		gt.Value(t, band.Level).Equal(tc.level)
	}

	gt.Value(t, policy.MatchBand(0)).Nil()
	gt.Value(t, policy.MatchBand(26)).Nil()
}

func TestPolicyPatch_Apply(t *testing.T) {
	t.Run("nil fields leave the policy unchanged", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		merged := (&model.PolicyPatch{}).Apply(policy)

		gt.Value(t, merged.MaxAcceptableScore).Equal(policy.MaxAcceptableScore)
		gt.Value(t, merged.AppetiteEnabled).Equal(policy.AppetiteEnabled)
		gt.Array(t, merged.RiskLevels).Length(len(policy.RiskLevels))
	})

	t.Run("set fields replace their sections", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		threshold := 15
		disabled := false
		merged := (&model.PolicyPatch{
			MaxAcceptableScore: &threshold,
			AppetiteEnabled:    &disabled,
		}).Apply(policy)

		gt.Value(t, merged.MaxAcceptableScore).Equal(15)
		gt.Value(t, merged.AppetiteEnabled).Equal(false)
		// untouched sections survive
		gt.Array(t, merged.AssessmentMethods).Length(len(policy.AssessmentMethods))
	})

	t.Run("apply does not mutate the original", func(t *testing.T) {
		policy := model.NewDefaultPolicy("")
		threshold := 3
		_ = (&model.PolicyPatch{MaxAcceptableScore: &threshold}).Apply(policy)
		gt.Value(t, policy.MaxAcceptableScore).Equal(model.DefaultMaxAcceptableScore)
	})
}

func TestRisk_Recalculate(t *testing.T) {
	classify := func(score int) string {
		if score >= 12 {
			return "High"
		}
		return "Low"
	}

	t.Run("caches refresh from likelihood and impact", func(t *testing.T) {
		l, i := 4, 4
		risk := &model.Risk{CurrentLikelihood: &l, CurrentImpact: &i}
		risk.Recalculate(classify)

		gt.Value(t, *risk.CurrentScore).Equal(16)
		gt.Value(t, risk.CurrentLevel).Equal("High")
	})

	t.Run("missing inputs clear stale caches", func(t *testing.T) {
		stale := 25
		risk := &model.Risk{InherentScore: &stale, InherentLevel: "Critical"}
		risk.Recalculate(classify)

		gt.Value(t, risk.InherentScore).Nil()
		gt.Value(t, risk.InherentLevel).Equal("")
	})
}

func TestRisk_BaselineAssessment(t *testing.T) {
	t.Run("current triad wins", func(t *testing.T) {
		legacyL, legacyI := 2, 2
		curL, curI := 4, 5
		risk := &model.Risk{
			Likelihood: &legacyL, Impact: &legacyI,
			CurrentLikelihood: &curL, CurrentImpact: &curI,
		}
		l, i := risk.BaselineAssessment()
		gt.Value(t, l).Equal(4)
		gt.Value(t, i).Equal(5)
	})

	t.Run("legacy fields back-fill", func(t *testing.T) {
		legacyL, legacyI := 2, 3
		risk := &model.Risk{Likelihood: &legacyL, Impact: &legacyI}
		l, i := risk.BaselineAssessment()
		gt.Value(t, l).Equal(2)
		gt.Value(t, i).Equal(3)
	})

	t.Run("unassessed risk defaults to the scale midpoint", func(t *testing.T) {
		risk := &model.Risk{}
		l, i := risk.BaselineAssessment()
		gt.Value(t, l).Equal(3)
		gt.Value(t, i).Equal(3)
	})

	t.Run("zero values fall through like absent ones", func(t *testing.T) {
		zero := 0
		legacyL := 2
		risk := &model.Risk{
			Likelihood:        &legacyL,
			CurrentLikelihood: &zero,
			CurrentImpact:     &zero,
		}
		l, i := risk.BaselineAssessment()
		gt.Value(t, l).Equal(2)
		gt.Value(t, i).Equal(3)
	})
}
