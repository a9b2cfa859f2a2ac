package agentfile

import (
	"fmt"

	"github.com/bnema/synapse-cli/internal/domain"
)

const currentRoutesSchemaVersion = 1

// agentSchema is shared by every supported definition format. A top-level
// instructions field is accepted for older single-file agent definitions.
type agentSchema struct {
	ID           string           `toml:"id" json:"id" yaml:"id"`
	Name         string           `toml:"name" json:"name" yaml:"name"`
	Instructions string           `toml:"instructions,omitempty" json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Parameters   parametersSchema `toml:"parameters" json:"parameters" yaml:"parameters"`
}

type parametersSchema struct {
	Model           string   `toml:"model,omitempty" json:"model,omitempty" yaml:"model,omitempty"`
	Temperature     *float64 `toml:"temperature,omitempty" json:"temperature,omitempty" yaml:"temperature,omitempty"`
	TopP            *float64 `toml:"top_p,omitempty" json:"top_p,omitempty" yaml:"top_p,omitempty"`
	TopK            *int     `toml:"top_k,omitempty" json:"top_k,omitempty" yaml:"top_k,omitempty"`
	MaxOutputTokens *int     `toml:"max_output_tokens,omitempty" json:"max_output_tokens,omitempty" yaml:"max_output_tokens,omitempty"`
	MaxHistoryTurns *int     `toml:"max_history_turns,omitempty" json:"max_history_turns,omitempty" yaml:"max_history_turns,omitempty"`
	Instructions    string   `toml:"instructions,omitempty" json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

func toAgentSchema(def domain.AgentDefinition) agentSchema {
	p := def.Parameters
	return agentSchema{
		ID:   string(def.ID),
		Name: def.Name,
		Parameters: parametersSchema{
			Model:           p.Model,
			Temperature:     &p.Temperature,
			TopP:            &p.TopP,
			TopK:            &p.TopK,
			MaxOutputTokens: &p.MaxOutputTokens,
			MaxHistoryTurns: &p.MaxHistoryTurns,
			Instructions:    p.Instructions,
		},
	}
}

func fromAgentSchema(schema agentSchema, source string) domain.AgentDefinition {
	params := domain.DefaultLLMParameters()
	p := schema.Parameters
	if p.Model != "" {
		params.Model = p.Model
	}
	if p.Temperature != nil {
		params.Temperature = *p.Temperature
	}
	if p.TopP != nil {
		params.TopP = *p.TopP
	}
	if p.TopK != nil {
		params.TopK = *p.TopK
	}
	if p.MaxOutputTokens != nil {
		params.MaxOutputTokens = *p.MaxOutputTokens
	}
	if p.MaxHistoryTurns != nil {
		params.MaxHistoryTurns = *p.MaxHistoryTurns
	}
	params.Instructions = p.Instructions
	if params.Instructions == "" {
		params.Instructions = schema.Instructions
	}

	return domain.AgentDefinition{
		ID:         domain.NodeID(schema.ID),
		Name:       schema.Name,
		Parameters: params,
		Source:     source,
	}
}

type routesFileSchema struct {
	Version int           `toml:"version"`
	Routes  []routeSchema `toml:"routes"`
}

func (s *routesFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentRoutesSchemaVersion
	}
}

func (s routesFileSchema) validateVersion() error {
	if s.Version > currentRoutesSchemaVersion {
		return fmt.Errorf("unsupported routes schema version %d (current %d)", s.Version, currentRoutesSchemaVersion)
	}

	return nil
}

type routeSchema struct {
	ID          string   `toml:"id"`
	Kind        string   `toml:"kind"`
	Nodes       []string `toml:"nodes"`
	Description string   `toml:"description,omitempty"`
}

func toRouteSchema(route domain.Route) routeSchema {
	return routeSchema{
		ID:          string(route.ID),
		Kind:        string(route.Kind),
		Nodes:       route.NodeStrings(),
		Description: route.Description,
	}
}

func fromRouteSchema(schema routeSchema) domain.Route {
	nodes := make([]domain.NodeID, 0, len(schema.Nodes))
	for _, node := range schema.Nodes {
		nodes = append(nodes, domain.NodeID(node))
	}

	return domain.Route{
		ID:          domain.RouteID(schema.ID),
		Kind:        domain.RouteKind(schema.Kind),
		Nodes:       nodes,
		Description: schema.Description,
	}
}
