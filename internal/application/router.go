package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

// Router is the registry of addressable nodes and the dispatcher between them.
// The registry lock is never held while a node is processing a push.
type Router struct {
	mu    sync.RWMutex
	nodes map[string]ports.Node
	log   logrus.FieldLogger
}

func NewRouter(logger logrus.FieldLogger) *Router {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &Router{
		nodes: make(map[string]ports.Node),
		log:   logger,
	}
}

// RegisterNode binds id to node. An existing binding is replaced and the
// previous node is closed when it implements io.Closer.
func (r *Router) RegisterNode(id string, node ports.Node) error {
	if id == "" {
		return domain.ErrEmptyNodeID
	}
	if node == nil {
		return fmt.Errorf("register %s: %w", id, domain.ErrNilNode)
	}

	r.mu.Lock()
	previous, replaced := r.nodes[id]
	r.nodes[id] = node
	r.mu.Unlock()

	if !replaced || previous == node {
		r.log.WithField("node_id", id).Debug("node registered")
		return nil
	}

	r.log.WithField("node_id", id).Warn("node id already registered, replacing previous node")
	if closer, ok := previous.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			r.log.WithError(err).WithField("node_id", id).Warn("close replaced node")
		}
	}

	return nil
}

func (r *Router) Register(node ports.Node) error {
	if node == nil {
		return domain.ErrNilNode
	}
	return r.RegisterNode(node.ID(), node)
}

func (r *Router) Has(id string) bool {
	_, ok := r.lookup(id)
	return ok
}

func (r *Router) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.nodes))
	for id := range r.nodes {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

func (r *Router) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}

func (r *Router) lookup(id string) (ports.Node, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	node, ok := r.nodes[id]
	return node, ok
}

// Fetch returns the last output of node id. An unknown id yields an empty
// record together with ErrNodeNotFound.
func (r *Router) Fetch(id string) (domain.Record, error) {
	node, ok := r.lookup(id)
	if !ok {
		return domain.Record{}, fmt.Errorf("fetch %s: %w", id, domain.ErrNodeNotFound)
	}
	return node.Pull(), nil
}

func (r *Router) SendData(ctx context.Context, toID string, record domain.Record) bool {
	return r.push(ctx, toID, record) == nil
}

func (r *Router) Send(ctx context.Context, toID, fromID string) bool {
	record, err := r.Fetch(fromID)
	if err != nil {
		r.log.WithFields(logrus.Fields{"from": fromID, "to": toID}).Error("source node not found")
		return false
	}
	return r.SendData(ctx, toID, record)
}

// SendDataStream pushes initial through ids in order, feeding each node's
// output to the next. It stops at the first unknown id or failed push.
func (r *Router) SendDataStream(ctx context.Context, ids []string, initial domain.Record) bool {
	if len(ids) == 0 {
		r.log.Warn("stream called with no nodes")
		return false
	}

	current := initial
	for i, id := range ids {
		if err := r.push(ctx, id, current); err != nil {
			r.log.WithFields(logrus.Fields{"nodes": ids, "step": i}).WithError(err).Warn("stream stopped")
			return false
		}
		if i == len(ids)-1 {
			break
		}
		next, err := r.Fetch(id)
		if err != nil {
			r.log.WithFields(logrus.Fields{"nodes": ids, "step": i}).WithError(err).Warn("stream stopped")
			return false
		}
		current = next
	}

	return true
}

func (r *Router) SendStream(ctx context.Context, ids []string, fromID string) bool {
	record, err := r.Fetch(fromID)
	if err != nil {
		r.log.WithFields(logrus.Fields{"from": fromID, "nodes": ids}).Error("source node not found")
		return false
	}
	return r.SendDataStream(ctx, ids, record)
}

// SendDataMulti pushes a copy of record to every id in order. A failure for
// one id does not prevent delivery to the others. An empty list succeeds.
func (r *Router) SendDataMulti(ctx context.Context, ids []string, record domain.Record) bool {
	var result *multierror.Error
	for _, id := range ids {
		if err := r.push(ctx, id, record); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		r.log.WithFields(logrus.Fields{"nodes": ids, "failed": result.Len()}).WithError(err).Warn("multi dispatch incomplete")
		return false
	}
	return true
}

func (r *Router) SendMulti(ctx context.Context, ids []string, fromID string) bool {
	record, err := r.Fetch(fromID)
	if err != nil {
		r.log.WithFields(logrus.Fields{"from": fromID, "nodes": ids}).Error("source node not found")
		return false
	}
	return r.SendDataMulti(ctx, ids, record)
}

var errPushFailed = errors.New("push failed")

func (r *Router) push(ctx context.Context, id string, record domain.Record) (err error) {
	node, ok := r.lookup(id)
	if !ok {
		r.log.WithField("to", id).Error("target node not found")
		return fmt.Errorf("send to %s: %w", id, domain.ErrNodeNotFound)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			r.log.WithFields(logrus.Fields{"to": id, "panic": recovered}).Error("node panicked during push")
			err = fmt.Errorf("send to %s: %w: panic: %v", id, errPushFailed, recovered)
		}
	}()

	if !node.Push(ctx, record.Clone()) {
		r.log.WithField("to", id).Debug("node rejected push")
		return fmt.Errorf("send to %s: %w", id, errPushFailed)
	}
	return nil
}
