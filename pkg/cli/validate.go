package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/grclab/riskscope/pkg/cli/config"
	"github.com/grclab/riskscope/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var policyCfg config.Policy

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a policy defaults file and print the resulting policy",
		Flags:   policyCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			template, err := policyCfg.Configure()
			if err != nil {
				color.Red("✗ policy validation failed")
				return goerr.Wrap(err, "policy validation failed")
			}

			if template == nil {
				color.Yellow("No policy defaults file given, showing builtin defaults")
				template = model.NewDefaultPolicy("")
			} else {
				color.Green("✓ %s is valid", policyCfg.Path())
			}

			printPolicy(template)
			return nil
		},
	}
}

func printPolicy(p *model.ScoringPolicy) {
	bold := color.New(color.Bold)

	bold.Println("Risk levels")
	for _, band := range p.RiskLevels {
		fmt.Printf("  %-10s %2d-%2d  %s\n", band.Level, band.MinScore, band.MaxScore, band.Description)
	}

	bold.Println("Assessment methods")
	for _, m := range p.AssessmentMethods {
		marker := " "
		if m.IsDefault {
			marker = "*"
		}
		state := "inactive"
		if m.IsActive {
			state = "active"
		}
		fmt.Printf("  %s %-16s %dx%d  %s (%s)\n", marker, m.ID, m.LikelihoodScale, m.ImpactScale, m.Name, state)
	}

	bold.Println("Scales")
	fmt.Printf("  likelihood: %d steps, impact: %d steps\n", len(p.LikelihoodScale), len(p.ImpactScale))

	bold.Println("Risk appetite")
	enabled := "disabled"
	if p.AppetiteEnabled {
		enabled = "enabled"
	}
	fmt.Printf("  %s, max acceptable score %d\n", enabled, p.MaxAcceptableScore)
}
