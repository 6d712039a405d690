package config

import (
	"errors"
	"os"

	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Policy holds the CLI flag for the optional policy defaults file. The file
// overrides parts of the builtin default scoring policy used when an
// organization's policy is created lazily.
type Policy struct {
	path string
}

// policyDoc is the TOML shape of a policy defaults file. Absent sections
// keep the builtin defaults.
type policyDoc struct {
	RiskLevels         []model.RiskLevelBand    `toml:"risk_level"`
	AssessmentMethods  []model.AssessmentMethod `toml:"assessment_method"`
	LikelihoodScale    []model.ScaleStep        `toml:"likelihood"`
	ImpactScale        []model.ScaleStep        `toml:"impact"`
	MaxAcceptableScore *int                     `toml:"max_acceptable_risk_score"`
	AppetiteEnabled    *bool                    `toml:"enable_risk_appetite"`
}

// Flags returns CLI flags for policy defaults configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "policy-defaults",
			Usage:       "Path to TOML file overriding the builtin default scoring policy",
			Sources:     cli.EnvVars("RISKSCOPE_POLICY_DEFAULTS"),
			Destination: &p.path,
		},
	}
}

// Path returns the configured policy defaults file path
func (p *Policy) Path() string {
	return p.path
}

// Configure loads and validates the policy defaults file. It returns nil
// when no file is configured, meaning the builtin defaults apply unchanged.
func (p *Policy) Configure() (*model.ScoringPolicy, error) {
	if p.path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "policy defaults file not found", goerr.V(ConfigPathKey, p.path))
		}
		return nil, goerr.Wrap(err, "failed to read policy defaults file", goerr.V(ConfigPathKey, p.path))
	}

	var doc policyDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, goerr.Wrap(ErrInvalidPolicyFile, "failed to parse policy defaults file",
			goerr.V(ConfigPathKey, p.path), goerr.V("parse_error", err.Error()))
	}

	template := model.NewDefaultPolicy("")
	if doc.RiskLevels != nil {
		template.RiskLevels = doc.RiskLevels
	}
	if doc.AssessmentMethods != nil {
		template.AssessmentMethods = doc.AssessmentMethods
	}
	if doc.LikelihoodScale != nil {
		template.LikelihoodScale = doc.LikelihoodScale
	}
	if doc.ImpactScale != nil {
		template.ImpactScale = doc.ImpactScale
	}
	if doc.MaxAcceptableScore != nil {
		template.MaxAcceptableScore = *doc.MaxAcceptableScore
	}
	if doc.AppetiteEnabled != nil {
		template.AppetiteEnabled = *doc.AppetiteEnabled
	}

	if err := template.Validate(); err != nil {
		return nil, goerr.Wrap(errors.Join(ErrInvalidConfig, err), "policy defaults file failed validation",
			goerr.V(ConfigPathKey, p.path))
	}

	return template, nil
}
