package ports

import (
	"context"

	"github.com/bnema/synapse-cli/internal/domain"
)

type Generator interface {
	Generate(ctx context.Context, history []domain.Turn, params domain.LLMParameters) domain.GenerationResult
}
