package application

import (
	"context"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

const (
	DefaultGeneratorNodeID = "api_communicator"

	FieldInstructions = "instructions"
	FieldLLMParams    = "llm_params"

	invalidGeneratorInput = "Invalid input format to ApiCommunicator push(): missing string field 'content'"
)

// GeneratorNode is a stateless single-shot node: every push is an independent
// request carrying optional instructions and parameter overrides.
type GeneratorNode struct {
	id       string
	gen      ports.Generator
	defaults domain.LLMParameters
	log      logrus.FieldLogger

	mu     sync.Mutex
	output domain.Record
}

func NewGeneratorNode(id string, gen ports.Generator, defaults domain.LLMParameters, logger logrus.FieldLogger) *GeneratorNode {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &GeneratorNode{
		id:       id,
		gen:      gen,
		defaults: defaults,
		log:      logger.WithField("node_id", id),
		output:   domain.Record{},
	}
}

func (n *GeneratorNode) ID() string {
	return n.id
}

func (n *GeneratorNode) Pull() domain.Record {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.output.Clone()
}

func (n *GeneratorNode) Push(ctx context.Context, record domain.Record) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	content, ok := record.Content()
	if !ok {
		n.log.Warn("push rejected: missing string content")
		n.output = domain.ValidationFailure(invalidGeneratorInput)
		return false
	}

	params := overrideParameters(n.defaults, record[FieldLLMParams])
	turns := make([]domain.Turn, 0, 3)
	if instructions := record.String(FieldInstructions); instructions != "" {
		pair := domain.PrimingPair(instructions)
		turns = append(turns, pair[0], pair[1])
	}
	turns = append(turns, domain.UserTurn(content))

	result := safeGenerate(ctx, n.gen, turns, params)
	n.output = result.Record()
	if !result.Success {
		n.log.WithFields(logrus.Fields{"http_status": result.HTTPStatusCode, "error": result.ErrorMessage}).Warn("generation failed")
	}

	return result.Success
}

func overrideParameters(base domain.LLMParameters, raw any) domain.LLMParameters {
	var overrides map[string]any
	switch v := raw.(type) {
	case domain.Record:
		overrides = v
	case map[string]any:
		overrides = v
	default:
		return base
	}

	params := base
	if model, ok := overrides["model"].(string); ok && model != "" {
		params.Model = model
	}
	if v, ok := numberValue(overrides["temperature"]); ok {
		params.Temperature = v
	}
	if v, ok := numberValue(overrides["topP"]); ok {
		params.TopP = v
	}
	if v, ok := numberValue(overrides["topK"]); ok {
		params.TopK = int(math.Round(v))
	}
	if v, ok := numberValue(overrides["maxOutputTokens"]); ok {
		params.MaxOutputTokens = int(math.Round(v))
	}

	return params
}

func numberValue(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

var _ ports.Node = (*GeneratorNode)(nil)
