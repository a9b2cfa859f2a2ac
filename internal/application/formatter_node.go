package application

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

const (
	DefaultFormatterNodeID = "inter_agent_formatter"

	invalidFormatterInput = "Invalid input format to InterAgentFormatter push(): expected a successful response or string 'content'"
)

// FormatterNode turns an agent response into a request another agent accepts.
type FormatterNode struct {
	id     string
	prefix string
	log    logrus.FieldLogger

	mu     sync.Mutex
	output domain.Record
}

func NewFormatterNode(id, prefix string, logger logrus.FieldLogger) *FormatterNode {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &FormatterNode{
		id:     id,
		prefix: prefix,
		log:    logger.WithField("node_id", id),
		output: domain.Record{},
	}
}

func (n *FormatterNode) ID() string {
	return n.id
}

func (n *FormatterNode) Pull() domain.Record {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.output.Clone()
}

func (n *FormatterNode) Push(_ context.Context, record domain.Record) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if content, ok := record.Content(); ok {
		out := record.Clone()
		out[domain.FieldType] = domain.TypeAgentOutput
		out[domain.FieldContent] = content
		n.output = out
		return true
	}

	text, hasText := record[domain.FieldGeneratedText].(string)
	if !record.Success() || !hasText {
		n.log.Warn("push rejected: input is neither a request nor a successful response")
		n.output = domain.ValidationFailure(invalidFormatterInput)
		return false
	}

	n.output = domain.Record{
		domain.FieldType:    domain.TypeAgentOutput,
		domain.FieldContent: n.prefix + text,
	}
	return true
}

var _ ports.Node = (*FormatterNode)(nil)
