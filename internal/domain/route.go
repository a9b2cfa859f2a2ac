package domain

import (
	"fmt"
	"strings"
)

type RouteID string
type RouteKind string

const (
	// RouteKindPipeline feeds each node's output into the next node.
	RouteKindPipeline RouteKind = "pipeline"
	// RouteKindBroadcast sends the same record to every node independently.
	RouteKindBroadcast RouteKind = "broadcast"
)

type Route struct {
	ID          RouteID
	Kind        RouteKind
	Nodes       []NodeID
	Description string
}

func (r Route) Validate() error {
	if strings.TrimSpace(string(r.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(string(r.Kind)) == "" {
		return fmt.Errorf("kind is required")
	}
	if r.Kind != RouteKindPipeline && r.Kind != RouteKindBroadcast {
		return fmt.Errorf("unsupported route kind %q", r.Kind)
	}
	if len(r.Nodes) == 0 {
		return fmt.Errorf("route %s: %w", r.ID, ErrEmptyPipeline)
	}

	return nil
}

// NormalizeNodes drops blank ids. Broadcast routes are also deduplicated;
// a pipeline may legitimately visit the same node twice.
func (r *Route) NormalizeNodes() {
	if r == nil {
		return
	}

	nodes := make([]NodeID, 0, len(r.Nodes))
	seen := make(map[NodeID]struct{}, len(r.Nodes))
	for _, node := range r.Nodes {
		trimmed := NodeID(strings.TrimSpace(string(node)))
		if trimmed == "" {
			continue
		}
		if r.Kind == RouteKindBroadcast {
			if _, ok := seen[trimmed]; ok {
				continue
			}
			seen[trimmed] = struct{}{}
		}
		nodes = append(nodes, trimmed)
	}

	r.Nodes = nodes
}

func (r Route) NodeStrings() []string {
	out := make([]string, 0, len(r.Nodes))
	for _, node := range r.Nodes {
		out = append(out, string(node))
	}
	return out
}

func ParseRouteKind(raw string) (RouteKind, error) {
	switch kind := RouteKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case RouteKindPipeline, RouteKindBroadcast:
		return kind, nil
	default:
		return "", fmt.Errorf("unsupported route kind %q", raw)
	}
}
