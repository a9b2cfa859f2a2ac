package env

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

var ErrReadOnly = errors.New("environment secret store is read-only")

// Store resolves secrets from process environment variables, where the key
// is the variable name.
type Store struct {
	lookup func(string) (string, bool)
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{lookup: os.LookupEnv}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := strings.TrimSpace(key)
	if name == "" {
		return "", errors.New("secret key is empty")
	}

	value, ok := s.lookup(name)
	if !ok || strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("env %s: %w", name, domain.ErrSecretNotFound)
	}

	return value, nil
}

func (s *Store) Put(_ context.Context, key string, _ string) error {
	return fmt.Errorf("set %s: %w", key, ErrReadOnly)
}

func (s *Store) Delete(_ context.Context, key string) error {
	return fmt.Errorf("unset %s: %w", key, ErrReadOnly)
}
