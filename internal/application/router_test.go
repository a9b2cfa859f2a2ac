package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports/mocks"
)

func newTestRouter(t *testing.T, nodes ...*echoNode) *Router {
	t.Helper()

	logger, _ := quietLogger(t)
	router := NewRouter(logger)
	for _, node := range nodes {
		require.NoError(t, router.Register(node))
	}
	return router
}

func TestRouterRegisterNodeRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	assert.ErrorIs(t, router.RegisterNode("", newEchoNode("a")), domain.ErrEmptyNodeID)
	assert.ErrorIs(t, router.RegisterNode("a", nil), domain.ErrNilNode)
	assert.ErrorIs(t, router.Register(nil), domain.ErrNilNode)
	assert.Equal(t, 0, router.Len())
}

func TestRouterRegisterNodeReplacesAndClosesPrevious(t *testing.T) {
	t.Parallel()

	logger, hook := quietLogger(t)
	router := NewRouter(logger)
	first := newEchoNode("a")
	second := newEchoNode("a")

	require.NoError(t, router.Register(first))
	require.NoError(t, router.Register(second))

	assert.True(t, first.closed)
	assert.False(t, second.closed)
	assert.Equal(t, []string{"a"}, router.IDs())
	assert.Equal(t, "node id already registered, replacing previous node", hook.LastEntry().Message)

	require.True(t, router.SendData(context.Background(), "a", domain.NewUserInput("hi")))
	assert.Equal(t, 0, first.pushCount())
	assert.Equal(t, 1, second.pushCount())
}

func TestRouterIDsSorted(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newEchoNode("c"), newEchoNode("a"), newEchoNode("b"))

	assert.Equal(t, []string{"a", "b", "c"}, router.IDs())
	assert.True(t, router.Has("b"))
	assert.False(t, router.Has("z"))
	assert.Equal(t, 3, router.Len())
}

func TestRouterSendDataToMockNode(t *testing.T) {
	t.Parallel()

	node := mocks.NewMockNode(t)
	node.EXPECT().ID().Return("mocked")
	node.EXPECT().Push(mockAnyContext(), domain.NewUserInput("hi")).Return(true).Once()

	logger, _ := quietLogger(t)
	router := NewRouter(logger)
	require.NoError(t, router.Register(node))

	assert.True(t, router.SendData(context.Background(), "mocked", domain.NewUserInput("hi")))
}

func TestRouterSendDataRecoversNodePanic(t *testing.T) {
	t.Parallel()

	node := mocks.NewMockNode(t)
	node.EXPECT().ID().Return("fragile")
	node.EXPECT().Push(mockAnyContext(), domain.NewUserInput("hi")).
		RunAndReturn(func(context.Context, domain.Record) bool { panic("boom") }).Times(2)
	b := newEchoNode("b")

	logger, _ := quietLogger(t)
	router := NewRouter(logger)
	require.NoError(t, router.Register(node))
	require.NoError(t, router.Register(b))

	assert.NotPanics(t, func() {
		assert.False(t, router.SendData(context.Background(), "fragile", domain.NewUserInput("hi")))
	})
	assert.False(t, router.SendDataMulti(context.Background(), []string{"fragile", "b"}, domain.NewUserInput("hi")))
	assert.Equal(t, 1, b.pushCount())
}

func TestRouterSendDataUnknownTarget(t *testing.T) {
	t.Parallel()

	a := newEchoNode("a")
	router := newTestRouter(t, a)

	assert.False(t, router.SendData(context.Background(), "missing", domain.NewUserInput("hi")))
	assert.Equal(t, 0, a.pushCount())
}

func TestRouterSendDataDeliversCopy(t *testing.T) {
	t.Parallel()

	a := newEchoNode("a")
	router := newTestRouter(t, a)
	record := domain.Record{"content": "hi", "meta": map[string]any{"k": "v"}}

	require.True(t, router.SendData(context.Background(), "a", record))
	a.pushes[0]["meta"].(map[string]any)["k"] = "mutated"

	assert.Equal(t, "v", record["meta"].(map[string]any)["k"])
}

func TestRouterFetchUnknownReturnsEmptyRecordAndError(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	record, err := router.Fetch("missing")
	require.ErrorIs(t, err, domain.ErrNodeNotFound)
	require.NotNil(t, record)
	assert.Empty(t, record)
}

func TestRouterFetchBeforePushIsEmpty(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, newEchoNode("a"))

	record, err := router.Fetch("a")
	require.NoError(t, err)
	assert.Empty(t, record)
}

func TestRouterSendMatchesSendDataOfFetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	viaSend := newTestRouter(t, newEchoNode("src"), newEchoNode("dst"))
	viaFetch := newTestRouter(t, newEchoNode("src"), newEchoNode("dst"))
	for _, router := range []*Router{viaSend, viaFetch} {
		require.True(t, router.SendData(ctx, "src", domain.NewUserInput("seed")))
	}

	require.True(t, viaSend.Send(ctx, "dst", "src"))
	fetched, err := viaFetch.Fetch("src")
	require.NoError(t, err)
	require.True(t, viaFetch.SendData(ctx, "dst", fetched))

	left, err := viaSend.Fetch("dst")
	require.NoError(t, err)
	right, err := viaFetch.Fetch("dst")
	require.NoError(t, err)
	assert.Equal(t, right, left)
}

func TestRouterSendUnknownSourceDoesNotPush(t *testing.T) {
	t.Parallel()

	dst := newEchoNode("dst")
	router := newTestRouter(t, dst)

	assert.False(t, router.Send(context.Background(), "dst", "missing"))
	assert.Equal(t, 0, dst.pushCount())
}

func TestRouterSendDataStreamChainsOutputs(t *testing.T) {
	t.Parallel()

	a, b := newEchoNode("a"), newEchoNode("b")
	router := newTestRouter(t, a, b)

	require.True(t, router.SendDataStream(context.Background(), []string{"a", "b"}, domain.NewUserInput("hi")))

	require.Len(t, b.pushes, 1)
	assert.Equal(t, "a", b.pushes[0]["last_hop"])
	assert.Equal(t, "b", b.Pull()["last_hop"])
}

func TestRouterSendDataStreamStopsAtUnknownNode(t *testing.T) {
	t.Parallel()

	a := newEchoNode("a")
	router := newTestRouter(t, a)

	ok := router.SendDataStream(context.Background(), []string{"a", "B"}, domain.NewUserInput("r"))

	assert.False(t, ok)
	out := a.Pull()
	assert.Equal(t, "r", out["content"])
	assert.Equal(t, "a", out["last_hop"])
}

func TestRouterSendDataStreamStopsAtFailedPush(t *testing.T) {
	t.Parallel()

	a, b, c := newEchoNode("a"), newEchoNode("b"), newEchoNode("c")
	b.reject = true
	router := newTestRouter(t, a, b, c)

	assert.False(t, router.SendDataStream(context.Background(), []string{"a", "b", "c"}, domain.NewUserInput("r")))
	assert.Equal(t, 1, a.pushCount())
	assert.Equal(t, 1, b.pushCount())
	assert.Equal(t, 0, c.pushCount())
}

func TestRouterSendDataStreamEmptyFails(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	assert.False(t, router.SendDataStream(context.Background(), nil, domain.NewUserInput("r")))
}

func TestRouterSendStreamFetchesSourceFirst(t *testing.T) {
	t.Parallel()

	src, a := newEchoNode("src"), newEchoNode("a")
	router := newTestRouter(t, src, a)
	ctx := context.Background()

	assert.False(t, router.SendStream(ctx, []string{"a"}, "missing"))
	assert.Equal(t, 0, a.pushCount())

	require.True(t, router.SendData(ctx, "src", domain.NewUserInput("seed")))
	require.True(t, router.SendStream(ctx, []string{"a"}, "src"))
	assert.Equal(t, "src", a.pushes[0]["last_hop"])
}

func TestRouterSendDataMultiAttemptsEveryTarget(t *testing.T) {
	t.Parallel()

	a, b := newEchoNode("a"), newEchoNode("b")
	router := newTestRouter(t, a, b)

	ok := router.SendDataMulti(context.Background(), []string{"a", "missing", "b"}, domain.NewUserInput("r"))

	assert.False(t, ok)
	assert.Equal(t, "r", a.Pull()["content"])
	assert.Equal(t, "r", b.Pull()["content"])
}

func TestRouterSendDataMultiIndependentCopies(t *testing.T) {
	t.Parallel()

	a, b := newEchoNode("a"), newEchoNode("b")
	router := newTestRouter(t, a, b)

	require.True(t, router.SendDataMulti(context.Background(), []string{"a", "b"}, domain.NewUserInput("r")))
	a.pushes[0]["content"] = "changed"

	assert.Equal(t, "r", b.pushes[0]["content"])
}

func TestRouterSendDataMultiEmptySucceeds(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)
	assert.True(t, router.SendDataMulti(context.Background(), []string{}, domain.NewUserInput("r")))
}

func TestRouterSendMultiFetchesSourceFirst(t *testing.T) {
	t.Parallel()

	src, a, b := newEchoNode("src"), newEchoNode("a"), newEchoNode("b")
	b.reject = true
	router := newTestRouter(t, src, a, b)
	ctx := context.Background()

	require.True(t, router.SendData(ctx, "src", domain.NewUserInput("seed")))

	assert.False(t, router.SendMulti(ctx, []string{"a", "b"}, "src"))
	assert.Equal(t, "src", a.pushes[0]["last_hop"])
	assert.Equal(t, 1, b.pushCount())

	assert.False(t, router.SendMulti(ctx, []string{"a"}, "missing"))
	assert.Equal(t, 1, a.pushCount())
}
