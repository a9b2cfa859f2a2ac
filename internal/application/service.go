package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

var ErrAgentExists = errors.New("agent definition already exists")

// Service manages stored agent definitions and the secrets they depend on.
type Service struct {
	agents ports.AgentRepository
	store  ports.SecretStore
}

func NewService(agents ports.AgentRepository, store ports.SecretStore) *Service {
	return &Service{
		agents: agents,
		store:  store,
	}
}

func (s *Service) SaveAgent(ctx context.Context, cmd SaveAgentCommand) (domain.AgentDefinition, error) {
	def := domain.AgentDefinition{
		ID:         domain.NodeID(strings.TrimSpace(string(cmd.ID))),
		Name:       strings.TrimSpace(cmd.Name),
		Parameters: cmd.Parameters,
	}
	if err := def.Validate(); err != nil {
		return domain.AgentDefinition{}, err
	}

	if !cmd.Replace {
		_, err := s.agents.GetByID(ctx, def.ID)
		switch {
		case err == nil:
			return domain.AgentDefinition{}, fmt.Errorf("%w: %s", ErrAgentExists, def.ID)
		case !errors.Is(err, domain.ErrAgentDefinitionNotFound):
			return domain.AgentDefinition{}, fmt.Errorf("get agent by id: %w", err)
		}
	}

	if err := s.agents.Save(ctx, def); err != nil {
		return domain.AgentDefinition{}, fmt.Errorf("save agent definition: %w", err)
	}

	return def, nil
}

// ListAgents returns every loadable definition. Files that could not be
// loaded are reported in the catalog rather than failing the listing.
func (s *Service) ListAgents(ctx context.Context) (AgentCatalog, error) {
	defs, err := s.agents.List(ctx)
	catalog := AgentCatalog{}
	if err != nil {
		var skipped *multierror.Error
		if !errors.As(err, &skipped) {
			return AgentCatalog{}, fmt.Errorf("list agent definitions: %w", err)
		}
		catalog.Skipped = skipped.WrappedErrors()
	}

	catalog.Agents = make([]AgentSummary, 0, len(defs))
	for _, def := range defs {
		catalog.Agents = append(catalog.Agents, summaryFromDefinition(def))
	}

	return catalog, nil
}

func (s *Service) SetSecret(ctx context.Context, cmd SetSecretCommand) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		return fmt.Errorf("secret key is required")
	}
	if cmd.Value == "" {
		return fmt.Errorf("secret value is required")
	}

	if err := s.store.Put(ctx, key, cmd.Value); err != nil {
		return fmt.Errorf("store secret: %w", err)
	}
	return nil
}

func (s *Service) RemoveSecret(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("secret key is required")
	}

	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	return nil
}

func (s *Service) ResolveSecret(ctx context.Context, key string) (string, error) {
	value, err := s.store.Get(ctx, key)
	if err != nil {
		return "", fmt.Errorf("resolve secret %s: %w", key, err)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("resolve secret %s: %w", key, domain.ErrSecretNotFound)
	}
	return value, nil
}
