package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/grclab/riskscope/pkg/repository/memory"
	"github.com/grclab/riskscope/pkg/usecase"
)

func TestSettingsUseCase_GetPolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("first read creates defaults lazily", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		policy, err := uc.Settings.GetPolicy(ctx, "")
		gt.NoError(t, err).Required()

		gt.Value(t, policy.MaxAcceptableScore).Equal(model.DefaultMaxAcceptableScore)
		gt.Value(t, policy.AppetiteEnabled).Equal(true)
		gt.Value(t, policy.Version).Equal(1)
		gt.Array(t, policy.RiskLevels).Length(4)
		gt.Array(t, policy.AssessmentMethods).Length(3)

		// the lazily created policy is persisted
		stored, err := repo.Policy().Get(ctx, "")
		gt.NoError(t, err).Required()
		gt.Value(t, stored.ID).Equal(policy.ID)
	})

	t.Run("organizations get isolated policies", func(t *testing.T) {
		uc := usecase.New(memory.New())

		a, err := uc.Settings.GetPolicy(ctx, "org-a")
		gt.NoError(t, err).Required()
		b, err := uc.Settings.GetPolicy(ctx, "org-b")
		gt.NoError(t, err).Required()

		gt.Value(t, a.ID).NotEqual(b.ID)
	})

	t.Run("template option seeds new policies", func(t *testing.T) {
		template := model.NewDefaultPolicy("")
		template.MaxAcceptableScore = 15
		uc := usecase.New(memory.New(), usecase.WithPolicyDefaults(template))

		policy, err := uc.Settings.GetPolicy(ctx, "org-a")
		gt.NoError(t, err).Required()
		gt.Value(t, policy.MaxAcceptableScore).Equal(15)
		gt.Value(t, policy.OrgID.String()).Equal("org-a")
	})
}

func TestSettingsUseCase_UpdatePolicy(t *testing.T) {
	ctx := context.Background()

	t.Run("patch merges and bumps the version", func(t *testing.T) {
		uc := usecase.New(memory.New())
		threshold := 8

		updated, err := uc.Settings.UpdatePolicy(ctx, "", &model.PolicyPatch{
			MaxAcceptableScore: &threshold,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, updated.MaxAcceptableScore).Equal(8)
		gt.Value(t, updated.Version).Equal(2)
		// untouched sections survive the merge
		gt.Array(t, updated.RiskLevels).Length(4)

		again, err := uc.Settings.UpdatePolicy(ctx, "", &model.PolicyPatch{
			AppetiteEnabled: boolPtr(false),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, again.Version).Equal(3)
		gt.Value(t, again.MaxAcceptableScore).Equal(8)
		gt.Value(t, again.AppetiteEnabled).Equal(false)
	})

	t.Run("invalid patch is rejected and nothing stored", func(t *testing.T) {
		uc := usecase.New(memory.New())

		_, err := uc.Settings.UpdatePolicy(ctx, "", &model.PolicyPatch{
			RiskLevels: []model.RiskLevelBand{
				{Level: "Everything", MinScore: 2, MaxScore: 25},
			},
		})
		gt.Error(t, err).Is(usecase.ErrInvalidPolicy)

		policy, err := uc.Settings.GetPolicy(ctx, "")
		gt.NoError(t, err).Required()
		gt.Array(t, policy.RiskLevels).Length(4)
		gt.Value(t, policy.Version).Equal(1)
	})
}

func TestSettingsUseCase_ResetPolicy(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	threshold := 5
	updated, err := uc.Settings.UpdatePolicy(ctx, "", &model.PolicyPatch{
		MaxAcceptableScore: &threshold,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.MaxAcceptableScore).Equal(5)

	reset, err := uc.Settings.ResetPolicy(ctx, "")
	gt.NoError(t, err).Required()

	gt.Value(t, reset.MaxAcceptableScore).Equal(model.DefaultMaxAcceptableScore)
	gt.Value(t, reset.Version).Equal(1)
	gt.Value(t, reset.ID).NotEqual(updated.ID)

	t.Run("reset works without a stored policy", func(t *testing.T) {
		fresh := usecase.New(memory.New())
		policy, err := fresh.Settings.ResetPolicy(ctx, "")
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Version).Equal(1)
	})
}

func TestSettingsUseCase_ClassifyScore(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	band, err := uc.Settings.ClassifyScore(ctx, "", 16)
	gt.NoError(t, err).Required()
	gt.Value(t, band).NotNil().Required()
	gt.Value(t, band.Level).Equal("High")
	gt.Value(t, band.Color).Equal("#f97316")

	outside, err := uc.Settings.ClassifyScore(ctx, "", 99)
	gt.NoError(t, err).Required()
	gt.Value(t, outside).Nil()
}

func TestSettingsUseCase_CheckAppetite(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	check, err := uc.Settings.CheckAppetite(ctx, "", 12)
	gt.NoError(t, err).Required()
	gt.Value(t, check.Exceeds).Equal(true)
	gt.Value(t, check.MaxAcceptable).Equal(model.DefaultMaxAcceptableScore)
	gt.Value(t, check.RequiresEscalation).Equal(true)
}

func boolPtr(v bool) *bool { return &v }
