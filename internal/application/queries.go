package application

import "github.com/bnema/synapse-cli/internal/domain"

type AgentSummary struct {
	ID              domain.NodeID
	Name            string
	Model           string
	Temperature     float64
	MaxHistoryTurns int
	Source          string
}

type AgentCatalog struct {
	Agents  []AgentSummary
	Skipped []error
}

func summaryFromDefinition(def domain.AgentDefinition) AgentSummary {
	return AgentSummary{
		ID:              def.ID,
		Name:            def.Name,
		Model:           def.Parameters.Model,
		Temperature:     def.Parameters.Temperature,
		MaxHistoryTurns: def.Parameters.MaxHistoryTurns,
		Source:          def.Source,
	}
}
