package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

const invalidAgentInput = "Invalid input format to Agent push(): missing string field 'content'"

// Agent is a node that keeps a bounded conversation history and answers each
// push through the generator. MaxHistoryTurns counts the current exchange, so
// the generator sees at most MaxHistoryTurns-1 earlier exchanges.
type Agent struct {
	id     string
	name   string
	params domain.LLMParameters
	gen    ports.Generator
	log    logrus.FieldLogger
	clock  ports.Clock

	mu      sync.Mutex
	history domain.History
	output  domain.Record
}

type AgentOption func(*Agent)

func WithAgentLogger(logger logrus.FieldLogger) AgentOption {
	return func(a *Agent) {
		if logger != nil {
			a.log = logger
		}
	}
}

func WithAgentClock(clock ports.Clock) AgentOption {
	return func(a *Agent) {
		if clock != nil {
			a.clock = clock
		}
	}
}

func NewAgent(id, name string, params domain.LLMParameters, gen ports.Generator, opts ...AgentOption) *Agent {
	a := &Agent{
		id:     id,
		name:   name,
		params: params,
		gen:    gen,
		log:    logrus.StandardLogger(),
		clock:  ports.SystemClock{},
		output: domain.Record{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithField("node_id", id)

	return a
}

func (a *Agent) ID() string {
	return a.id
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Parameters() domain.LLMParameters {
	return a.params
}

func (a *Agent) History() []domain.Turn {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Turns()
}

func (a *Agent) Pull() domain.Record {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.output.Clone()
}

// Push runs one exchange. History changes only when the generator succeeds.
func (a *Agent) Push(ctx context.Context, record domain.Record) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	content, ok := record.Content()
	if !ok {
		a.log.Warn("push rejected: missing string content")
		a.output = domain.ValidationFailure(invalidAgentInput)
		return false
	}

	limit := a.params.HistoryLimit()
	working := a.history.Clone()
	working.Seed(a.params.Instructions)
	working.DropDanglingUser()
	working.MakeRoom(limit, 2)
	working.Append(domain.UserTurn(content))

	exchangeLog := a.log.WithField("exchange_id", uuid.NewString())
	started := a.clock.Now()
	result := safeGenerate(ctx, a.gen, working.Turns(), a.params)
	exchangeLog = exchangeLog.WithFields(logrus.Fields{
		"elapsed":     a.clock.Now().Sub(started),
		"http_status": result.HTTPStatusCode,
	})

	if !result.Success {
		exchangeLog.WithField("error", result.ErrorMessage).Warn("generation failed")
		a.output = result.Record()
		return false
	}

	working.Append(domain.ModelTurn(result.GeneratedText))
	working.Trim(limit)
	a.history = working
	a.output = result.Record()
	exchangeLog.WithField("history_len", working.Len()).Debug("exchange complete")

	return true
}

func safeGenerate(ctx context.Context, gen ports.Generator, history []domain.Turn, params domain.LLMParameters) (result domain.GenerationResult) {
	if gen == nil {
		return domain.GenerationFailure("no generator configured", 0)
	}
	if err := ctx.Err(); err != nil {
		return domain.GenerationFailure(fmt.Sprintf("request failed: %v", err), 0)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			result = domain.GenerationFailure(fmt.Sprintf("generator panic: %v", recovered), 0)
		}
	}()

	return gen.Generate(ctx, history, params)
}

var _ ports.Node = (*Agent)(nil)
