package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/grclab/riskscope/pkg/cli/config"
	"github.com/grclab/riskscope/pkg/domain/model"
)

func writeTempPolicy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(body), 0644)).Required()
	return path
}

func TestPolicyConfigureNoPath(t *testing.T) {
	policy := config.NewPolicyForTest("")

	template, err := policy.Configure()
	gt.NoError(t, err)
	gt.Value(t, template).Nil()
}

func TestPolicyConfigureMissingFile(t *testing.T) {
	policy := config.NewPolicyForTest(filepath.Join(t.TempDir(), "no_such.toml"))

	_, err := policy.Configure()
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}

func TestPolicyConfigureInvalidTOML(t *testing.T) {
	path := writeTempPolicy(t, "max_acceptable_risk_score = [broken")
	policy := config.NewPolicyForTest(path)

	_, err := policy.Configure()
	gt.Error(t, err).Is(config.ErrInvalidPolicyFile)
}

func TestPolicyConfigureOverridesAppetite(t *testing.T) {
	path := writeTempPolicy(t, `
max_acceptable_risk_score = 15
enable_risk_appetite = false
`)
	policy := config.NewPolicyForTest(path)

	template, err := policy.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, template).NotNil()
	gt.Value(t, template.MaxAcceptableScore).Equal(15)
	gt.Value(t, template.AppetiteEnabled).Equal(false)

	// untouched sections keep builtin defaults
	defaults := model.NewDefaultPolicy("")
	gt.Array(t, template.RiskLevels).Length(len(defaults.RiskLevels))
	gt.Array(t, template.AssessmentMethods).Length(len(defaults.AssessmentMethods))
	gt.Array(t, template.LikelihoodScale).Length(len(defaults.LikelihoodScale))
}

func TestPolicyConfigureOverridesBands(t *testing.T) {
	path := writeTempPolicy(t, `
[[risk_level]]
level = "Acceptable"
min_score = 1
max_score = 12
color = "#22c55e"

[[risk_level]]
level = "Unacceptable"
min_score = 13
max_score = 25
color = "#dc2626"
escalation = true
`)
	policy := config.NewPolicyForTest(path)

	template, err := policy.Configure()
	gt.NoError(t, err).Required()
	gt.Array(t, template.RiskLevels).Length(2)
	gt.Value(t, template.RiskLevels[0].Level).Equal("Acceptable")
	gt.Value(t, template.RiskLevels[1].Escalation).Equal(true)

	band := template.MatchBand(13)
	gt.Value(t, band).NotNil()
	gt.Value(t, band.Level).Equal("Unacceptable")
}

func TestPolicyConfigureRejectsInvalidPolicy(t *testing.T) {
	// bands leave 21..25 uncovered, which the validator rejects
	path := writeTempPolicy(t, `
[[risk_level]]
level = "Low"
min_score = 1
max_score = 20
color = "#22c55e"
`)
	policy := config.NewPolicyForTest(path)

	_, err := policy.Configure()
	gt.Error(t, err).Is(config.ErrInvalidConfig)
}
