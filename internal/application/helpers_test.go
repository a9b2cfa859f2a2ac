package application

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"

	"github.com/bnema/synapse-cli/internal/domain"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

func quietLogger(t *testing.T) (logrus.FieldLogger, *test.Hook) {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(io.Discard)
	return logger, hook
}

// echoNode stores every accepted record unchanged, tagged with its id.
type echoNode struct {
	id     string
	reject bool

	mu     sync.Mutex
	pushes []domain.Record
	output domain.Record
	closed bool
}

func newEchoNode(id string) *echoNode {
	return &echoNode{id: id, output: domain.Record{}}
}

func (n *echoNode) ID() string { return n.id }

func (n *echoNode) Push(_ context.Context, record domain.Record) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.pushes = append(n.pushes, record)
	if n.reject {
		n.output = domain.ValidationFailure("rejected by " + n.id)
		return false
	}

	out := record.Clone()
	out["last_hop"] = n.id
	n.output = out
	return true
}

func (n *echoNode) Pull() domain.Record {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.output.Clone()
}

func (n *echoNode) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	return nil
}

func (n *echoNode) pushCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.pushes)
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
