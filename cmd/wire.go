package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/bnema/synapse-cli/internal/adapters/generation/gemini"
	nodesadapter "github.com/bnema/synapse-cli/internal/adapters/render/nodes"
	"github.com/bnema/synapse-cli/internal/adapters/repo/agentfile"
	chainstore "github.com/bnema/synapse-cli/internal/adapters/secrets/chain"
	"github.com/bnema/synapse-cli/internal/application"
	"github.com/bnema/synapse-cli/internal/ports"
)

type app struct {
	cfg          *viper.Viper
	logger       *logrus.Logger
	service      *application.Service
	agents       ports.AgentRepository
	routes       ports.RouteRepository
	secretStore  ports.SecretStore
	generator    ports.Generator
	nodeRenderer func(nodesadapter.Catalog, nodesadapter.RenderOptions) (string, error)
	httpClient   *http.Client
	clock        ports.Clock
}

func wireApp() (*app, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	dotEnvErr := loadDotEnv()
	cfg, err := loadConfig(homeDir)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, os.Stderr)
	if dotEnvErr != nil {
		logger.WithError(dotEnvErr).Debug("no .env file loaded")
	}

	agents, err := agentfile.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire agent repository: %w", err)
	}
	routes, err := agentfile.NewRouteRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire route repository: %w", err)
	}

	secretStore, err := chainstore.NewDefault(cfg.GetString(keySecretsDir))
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}

	a := &app{
		cfg:          cfg,
		logger:       logger,
		service:      application.NewService(agents, secretStore),
		agents:       agents,
		routes:       routes,
		secretStore:  secretStore,
		nodeRenderer: nodesadapter.Render,
		httpClient:   http.DefaultClient,
		clock:        ports.SystemClock{},
	}
	a.generator = a.newGenerator()

	return a, nil
}

// newGenerator resolves the API key per request, so commands that never
// reach a generating node run without one.
func (a *app) newGenerator() ports.Generator {
	keyRef := a.cfg.GetString(keyAPIKeyRef)

	return gemini.Adapter{
		API: gemini.API{
			BaseURL: a.cfg.GetString(keyAPIURL),
			KeyName: keyRef,
			ResolveKey: func(ctx context.Context) (string, error) {
				return a.service.ResolveSecret(ctx, keyRef)
			},
		},
		HTTPClient:     a.httpClient,
		RequestTimeout: a.cfg.GetDuration(keyAPITimeout),
		Logger:         a.logger,
	}
}

// newRouter registers the built-in nodes and every loadable agent. A missing
// agents directory leaves only the built-ins.
func (a *app) newRouter(ctx context.Context) (*application.Router, application.BootstrapReport, error) {
	router := application.NewRouter(a.logger)
	report, err := application.Bootstrap(ctx, router, a.agents, a.generator, application.BootstrapOptions{
		Logger: a.logger,
		Clock:  a.clock,
	})
	if err != nil {
		if !errors.Is(err, agentfile.ErrAgentsDirNotFound) {
			return nil, application.BootstrapReport{}, err
		}
		a.logger.WithError(err).Warn("no agent definitions loaded")
	}

	return router, report, nil
}
