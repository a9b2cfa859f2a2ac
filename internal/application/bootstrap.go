package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

type BootstrapOptions struct {
	GeneratorNodeID string
	FormatterNodeID string
	FormatterPrefix string
	// Defaults apply to the generator node when a push carries no overrides.
	Defaults domain.LLMParameters
	Logger   logrus.FieldLogger
	Clock    ports.Clock
}

type BootstrapReport struct {
	Agents  []string
	Skipped []error
}

// Bootstrap registers the built-in nodes and one agent per stored definition.
// Definitions that fail to load or validate are skipped and reported; only a
// repository failure that yields no definitions at all is returned as an error.
func Bootstrap(ctx context.Context, router *Router, repo ports.AgentRepository, gen ports.Generator, opts BootstrapOptions) (BootstrapReport, error) {
	if err := ctx.Err(); err != nil {
		return BootstrapReport{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	generatorID := opts.GeneratorNodeID
	if generatorID == "" {
		generatorID = DefaultGeneratorNodeID
	}
	formatterID := opts.FormatterNodeID
	if formatterID == "" {
		formatterID = DefaultFormatterNodeID
	}
	defaults := opts.Defaults
	if defaults.Model == "" {
		defaults = domain.DefaultLLMParameters()
	}

	if err := router.Register(NewGeneratorNode(generatorID, gen, defaults, logger)); err != nil {
		return BootstrapReport{}, fmt.Errorf("register generator node: %w", err)
	}
	if err := router.Register(NewFormatterNode(formatterID, opts.FormatterPrefix, logger)); err != nil {
		return BootstrapReport{}, fmt.Errorf("register formatter node: %w", err)
	}

	report := BootstrapReport{}
	if repo == nil {
		return report, nil
	}

	defs, err := repo.List(ctx)
	if err != nil {
		var skipped *multierror.Error
		if !errors.As(err, &skipped) {
			return report, fmt.Errorf("list agent definitions: %w", err)
		}
		report.Skipped = append(report.Skipped, skipped.WrappedErrors()...)
	}

	for _, def := range defs {
		if err := def.Validate(); err != nil {
			report.Skipped = append(report.Skipped, fmt.Errorf("%s: %w", sourceOf(def), err))
			continue
		}

		agent := NewAgent(string(def.ID), def.Name, def.Parameters, gen, WithAgentLogger(logger), WithAgentClock(opts.Clock))
		if err := router.Register(agent); err != nil {
			report.Skipped = append(report.Skipped, fmt.Errorf("%s: %w", sourceOf(def), err))
			continue
		}
		report.Agents = append(report.Agents, agent.ID())
	}

	for _, skipped := range report.Skipped {
		logger.WithError(skipped).Warn("agent definition skipped")
	}
	logger.WithFields(logrus.Fields{"agents": len(report.Agents), "skipped": len(report.Skipped)}).Info("agents loaded")

	return report, nil
}

func sourceOf(def domain.AgentDefinition) string {
	if def.Source != "" {
		return def.Source
	}
	return string(def.ID)
}
