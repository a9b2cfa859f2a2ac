package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		route   Route
		wantErr string
	}{
		{
			name:  "valid pipeline",
			route: Route{ID: "review", Kind: RouteKindPipeline, Nodes: []NodeID{"writer", "inter_agent_formatter", "critic"}},
		},
		{
			name:    "missing id",
			route:   Route{Kind: RouteKindBroadcast, Nodes: []NodeID{"a"}},
			wantErr: "id is required",
		},
		{
			name:    "missing kind",
			route:   Route{ID: "fanout", Nodes: []NodeID{"a"}},
			wantErr: "kind is required",
		},
		{
			name:    "unsupported kind",
			route:   Route{ID: "fanout", Kind: "mesh", Nodes: []NodeID{"a"}},
			wantErr: "unsupported route kind",
		},
		{
			name:    "no nodes",
			route:   Route{ID: "fanout", Kind: RouteKindBroadcast},
			wantErr: ErrEmptyPipeline.Error(),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.route.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRouteNormalizeNodesDeduplicatesBroadcastOnly(t *testing.T) {
	t.Parallel()

	broadcast := Route{Kind: RouteKindBroadcast, Nodes: []NodeID{"a", " ", "b", "a", " b "}}
	broadcast.NormalizeNodes()
	assert.Equal(t, []NodeID{"a", "b"}, broadcast.Nodes)

	pipeline := Route{Kind: RouteKindPipeline, Nodes: []NodeID{"a", "", "fmt", "a"}}
	pipeline.NormalizeNodes()
	assert.Equal(t, []NodeID{"a", "fmt", "a"}, pipeline.Nodes)
	assert.Equal(t, []string{"a", "fmt", "a"}, pipeline.NodeStrings())
}

func TestParseRouteKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseRouteKind(" Broadcast ")
	require.NoError(t, err)
	assert.Equal(t, RouteKindBroadcast, kind)

	_, err = ParseRouteKind("fanout")
	assert.ErrorContains(t, err, "unsupported route kind")
}
