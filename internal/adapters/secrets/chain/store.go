package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"

	envstore "github.com/bnema/synapse-cli/internal/adapters/secrets/env"
	filestore "github.com/bnema/synapse-cli/internal/adapters/secrets/file"
	passstore "github.com/bnema/synapse-cli/internal/adapters/secrets/pass"
	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

// Store consults its backends in order. Reads return the first hit, writes
// go to the first backend that accepts them, deletes reach every backend.
type Store struct {
	stores []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoStores = errors.New("secret chain has no backends")

func NewStore(stores ...ports.SecretStore) (*Store, error) {
	if len(stores) == 0 {
		return nil, errNoStores
	}
	for i, store := range stores {
		if store == nil {
			return nil, fmt.Errorf("secret backend %d is nil", i)
		}
	}

	return &Store{stores: append([]ports.SecretStore(nil), stores...)}, nil
}

// NewDefault resolves environment variables first, then pass, then files
// below fileRoot.
func NewDefault(fileRoot string) (*Store, error) {
	return NewStore(envstore.NewStore(), passstore.NewStore(passstore.DefaultPrefix), filestore.NewStore(fileRoot))
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var result *multierror.Error
	for _, store := range s.stores {
		value, err := store.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		result = multierror.Append(result, err)
	}

	if allNotFound(result) {
		return "", fmt.Errorf("secret %q: %w", key, domain.ErrSecretNotFound)
	}
	return "", fmt.Errorf("get secret %q: %w", key, result.ErrorOrNil())
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var result *multierror.Error
	for _, store := range s.stores {
		err := store.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		if errors.Is(err, envstore.ErrReadOnly) {
			continue
		}
		result = multierror.Append(result, err)
	}

	if result == nil {
		return fmt.Errorf("put secret %q: no writable backend", key)
	}
	return fmt.Errorf("put secret %q: %w", key, result.ErrorOrNil())
}

func (s *Store) Delete(ctx context.Context, key string) error {
	var result *multierror.Error
	for _, store := range s.stores {
		err := store.Delete(ctx, key)
		if err == nil || errors.Is(err, envstore.ErrReadOnly) || errors.Is(err, domain.ErrSecretNotFound) || errors.Is(err, passstore.ErrUnavailable) {
			continue
		}
		if shouldStop(err) {
			return err
		}
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("delete secret %q: %w", key, err)
	}
	return nil
}

func allNotFound(result *multierror.Error) bool {
	if result == nil {
		return true
	}
	for _, err := range result.Errors {
		if !errors.Is(err, domain.ErrSecretNotFound) && !errors.Is(err, passstore.ErrUnavailable) {
			return false
		}
	}
	return true
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
