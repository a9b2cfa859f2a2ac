package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	envstore "github.com/bnema/synapse-cli/internal/adapters/secrets/env"
	passstore "github.com/bnema/synapse-cli/internal/adapters/secrets/pass"
	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
	portmocks "github.com/bnema/synapse-cli/internal/ports/mocks"
)

const apiKey = "GEMINI_API_KEY"

func newChain(t *testing.T, n int) (*Store, []*portmocks.MockSecretStore) {
	t.Helper()

	backends := make([]*portmocks.MockSecretStore, 0, n)
	stores := make([]ports.SecretStore, 0, n)
	for i := 0; i < n; i++ {
		backend := portmocks.NewMockSecretStore(t)
		backends = append(backends, backend)
		stores = append(stores, backend)
	}

	store, err := NewStore(stores...)
	require.NoError(t, err)
	return store, backends
}

func TestNewStoreRejectsEmptyAndNilBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	assert.ErrorIs(t, err, errNoStores)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	assert.ErrorContains(t, err, "secret backend 1 is nil")
}

func TestStoreGetReturnsFirstHit(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 3)
	backends[0].EXPECT().Get(mock.Anything, apiKey).Return("", domain.ErrSecretNotFound).Once()
	backends[1].EXPECT().Get(mock.Anything, apiKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), apiKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetAllMissingIsNotFound(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 2)
	backends[0].EXPECT().Get(mock.Anything, apiKey).Return("", domain.ErrSecretNotFound).Once()
	backends[1].EXPECT().Get(mock.Anything, apiKey).Return("", passstore.ErrUnavailable).Once()

	_, err := store.Get(context.Background(), apiKey)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetCombinesRealFailures(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 2)
	backends[0].EXPECT().Get(mock.Anything, apiKey).Return("", errors.New("pass failed")).Once()
	backends[1].EXPECT().Get(mock.Anything, apiKey).Return("", errors.New("file failed")).Once()

	_, err := store.Get(context.Background(), apiKey)
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
	assert.NotErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 2)
	backends[0].EXPECT().Get(mock.Anything, apiKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), apiKey)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStorePutSkipsReadOnlyAndFallsBack(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 3)
	backends[0].EXPECT().Put(mock.Anything, apiKey, "secret").Return(envstore.ErrReadOnly).Once()
	backends[1].EXPECT().Put(mock.Anything, apiKey, "secret").Return(errors.New("pass failed")).Once()
	backends[2].EXPECT().Put(mock.Anything, apiKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), apiKey, "secret"))
}

func TestStorePutWithoutWritableBackend(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 1)
	backends[0].EXPECT().Put(mock.Anything, apiKey, "secret").Return(envstore.ErrReadOnly).Once()

	assert.ErrorContains(t, store.Put(context.Background(), apiKey, "secret"), "no writable backend")
}

func TestStoreDeleteReachesEveryBackend(t *testing.T) {
	t.Parallel()

	store, backends := newChain(t, 3)
	backends[0].EXPECT().Delete(mock.Anything, apiKey).Return(envstore.ErrReadOnly).Once()
	backends[1].EXPECT().Delete(mock.Anything, apiKey).Return(nil).Once()
	backends[2].EXPECT().Delete(mock.Anything, apiKey).Return(errors.New("permission denied")).Once()

	err := store.Delete(context.Background(), apiKey)
	assert.ErrorContains(t, err, "permission denied")
}
