package application

import "github.com/bnema/synapse-cli/internal/domain"

type SaveAgentCommand struct {
	ID         domain.NodeID
	Name       string
	Parameters domain.LLMParameters
	Replace    bool
}

type SetSecretCommand struct {
	Key   string
	Value string
}

type SaveRouteCommand struct {
	ID          domain.RouteID
	Kind        domain.RouteKind
	Nodes       []domain.NodeID
	Description string
}

func (c SaveRouteCommand) Route() domain.Route {
	return domain.Route{
		ID:          c.ID,
		Kind:        c.Kind,
		Nodes:       append([]domain.NodeID(nil), c.Nodes...),
		Description: c.Description,
	}
}
