package ports

import (
	"context"

	"github.com/bnema/synapse-cli/internal/domain"
)

type AgentRepository interface {
	GetByID(ctx context.Context, id domain.NodeID) (domain.AgentDefinition, error)
	List(ctx context.Context) ([]domain.AgentDefinition, error)
	Save(ctx context.Context, def domain.AgentDefinition) error
}

type RouteRepository interface {
	GetByID(ctx context.Context, id domain.RouteID) (domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
	Save(ctx context.Context, route domain.Route) error
}
