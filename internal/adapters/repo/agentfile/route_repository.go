package agentfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

const routesPathKey = "routes.path"

type RouteRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.RouteRepository = (*RouteRepository)(nil)

func NewRouteRepository(cfg *viper.Viper) (*RouteRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	path := cfg.GetString(routesPathKey)
	if path == "" {
		fallback, err := defaultPath("routes.toml")
		if err != nil {
			return nil, err
		}
		path = fallback
	}

	path, err := normalizePath(path)
	if err != nil {
		return nil, err
	}

	return &RouteRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *RouteRepository) Save(ctx context.Context, route domain.Route) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toRouteSchema(route)
	updated := false
	for i := range file.Routes {
		if file.Routes[i].ID == encoded.ID {
			file.Routes[i] = encoded
			updated = true
			break
		}
	}
	if !updated {
		file.Routes = append(file.Routes, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	file.applyDefaults()
	return writeTOMLFile(r.path, file)
}

func (r *RouteRepository) GetByID(ctx context.Context, id domain.RouteID) (domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return domain.Route{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Route{}, err
	}

	for _, entry := range file.Routes {
		if entry.ID == string(id) {
			return fromRouteSchema(entry), nil
		}
	}

	return domain.Route{}, fmt.Errorf("route %s: %w", id, domain.ErrRouteNotFound)
}

func (r *RouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	routes := make([]domain.Route, 0, len(file.Routes))
	for _, entry := range file.Routes {
		routes = append(routes, fromRouteSchema(entry))
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].ID < routes[j].ID
	})

	return routes, nil
}

func (r *RouteRepository) readSchema() (routesFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := routesFileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return routesFileSchema{}, fmt.Errorf("read routes file: %w", err)
	}

	var file routesFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return routesFileSchema{}, fmt.Errorf("decode routes file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return routesFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
