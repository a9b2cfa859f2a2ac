package application

import (
	"context"
	"fmt"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

type RouteService struct {
	routes ports.RouteRepository
	router *Router
}

func NewRouteService(routes ports.RouteRepository, router *Router) *RouteService {
	return &RouteService{routes: routes, router: router}
}

type NodeOutput struct {
	NodeID string
	Record domain.Record
	Found  bool
}

type RouteResult struct {
	Route   domain.Route
	OK      bool
	Outputs []NodeOutput
}

func (s *RouteService) Get(ctx context.Context, id domain.RouteID) (domain.Route, error) {
	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return domain.Route{}, err
	}
	return route, nil
}

func (s *RouteService) List(ctx context.Context) ([]domain.Route, error) {
	routes, err := s.routes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

func (s *RouteService) Save(ctx context.Context, route domain.Route) (domain.Route, error) {
	route.NormalizeNodes()
	if err := route.Validate(); err != nil {
		return domain.Route{}, err
	}

	if err := s.routes.Save(ctx, route); err != nil {
		return domain.Route{}, fmt.Errorf("save route: %w", err)
	}

	return route, nil
}

// Dispatch runs the named route against the router and collects the output
// of every node on it afterwards.
func (s *RouteService) Dispatch(ctx context.Context, id domain.RouteID, record domain.Record) (RouteResult, error) {
	route, err := s.Get(ctx, id)
	if err != nil {
		return RouteResult{}, err
	}

	nodes := route.NodeStrings()
	result := RouteResult{Route: route}
	switch route.Kind {
	case domain.RouteKindPipeline:
		result.OK = s.router.SendDataStream(ctx, nodes, record)
	case domain.RouteKindBroadcast:
		result.OK = s.router.SendDataMulti(ctx, nodes, record)
	default:
		return RouteResult{}, fmt.Errorf("dispatch route %s: unsupported kind %q", route.ID, route.Kind)
	}

	result.Outputs = CollectOutputs(s.router, nodes)
	return result, nil
}

// CollectOutputs fetches the current output of each id, once per distinct id.
func CollectOutputs(router *Router, ids []string) []NodeOutput {
	outputs := make([]NodeOutput, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		record, err := router.Fetch(id)
		outputs = append(outputs, NodeOutput{NodeID: id, Record: record, Found: err == nil})
	}
	return outputs
}
