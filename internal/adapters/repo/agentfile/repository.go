package agentfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bnema/synapse-cli/internal/domain"
	"github.com/bnema/synapse-cli/internal/ports"
)

const agentsDirKey = "agents.dir"

var ErrAgentsDirNotFound = errors.New("agents directory not found")

type decodeFunc func(data []byte, out *agentSchema) error

var decoders = map[string]decodeFunc{
	".toml": func(data []byte, out *agentSchema) error {
		return toml.Unmarshal(data, out)
	},
	".json": func(data []byte, out *agentSchema) error {
		return json.Unmarshal(data, out)
	},
	".yaml": decodeYAML,
	".yml":  decodeYAML,
}

func decodeYAML(data []byte, out *agentSchema) error {
	return yaml.Unmarshal(data, out)
}

// Repository reads agent definitions from a directory, one definition per
// file. New definitions are always written as TOML.
type Repository struct {
	dir string
	mu  *sync.RWMutex
}

var _ ports.AgentRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	dir := cfg.GetString(agentsDirKey)
	if dir == "" {
		fallback, err := defaultPath("agents")
		if err != nil {
			return nil, err
		}
		dir = fallback
	}

	dir, err := normalizePath(dir)
	if err != nil {
		return nil, err
	}

	return &Repository{dir: dir, mu: lockForPath(dir)}, nil
}

func (r *Repository) Dir() string {
	return r.dir
}

// List returns the definitions that could be loaded, sorted by id. Files that
// fail to decode or lack an id are reported through a *multierror.Error
// alongside the partial result.
func (r *Repository) List(ctx context.Context) ([]domain.AgentDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAgentsDirNotFound, r.dir)
		}
		return nil, fmt.Errorf("read agents directory: %w", err)
	}

	var skipped *multierror.Error
	defs := make([]domain.AgentDefinition, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		decode, ok := decoders[strings.ToLower(filepath.Ext(entry.Name()))]
		if !ok {
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(r.dir, entry.Name())
		def, err := readDefinition(path, decode)
		if err != nil {
			skipped = multierror.Append(skipped, err)
			continue
		}
		defs = append(defs, def)
	}

	sort.SliceStable(defs, func(i, j int) bool {
		return defs[i].ID < defs[j].ID
	})

	return defs, skipped.ErrorOrNil()
}

// GetByID reports a missing agents directory as ErrAgentDefinitionNotFound.
func (r *Repository) GetByID(ctx context.Context, id domain.NodeID) (domain.AgentDefinition, error) {
	defs, err := r.List(ctx)
	if err != nil {
		if errors.Is(err, ErrAgentsDirNotFound) {
			return domain.AgentDefinition{}, fmt.Errorf("agent %s: %w", id, domain.ErrAgentDefinitionNotFound)
		}
		var skipped *multierror.Error
		if !errors.As(err, &skipped) {
			return domain.AgentDefinition{}, err
		}
	}

	for _, def := range defs {
		if def.ID == id {
			return def, nil
		}
	}

	return domain.AgentDefinition{}, domain.ErrAgentDefinitionNotFound
}

func (r *Repository) Save(ctx context.Context, def domain.AgentDefinition) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if strings.ContainsAny(string(def.ID), `/\`) {
		return fmt.Errorf("agent id %q must not contain path separators", def.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, string(def.ID)+".toml")
	if err := writeTOMLFile(path, toAgentSchema(def)); err != nil {
		return fmt.Errorf("write agent %s: %w", def.ID, err)
	}

	return nil
}

func readDefinition(path string, decode decodeFunc) (domain.AgentDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.AgentDefinition{}, fmt.Errorf("read %s: %w", path, err)
	}

	var schema agentSchema
	if err := decode(data, &schema); err != nil {
		return domain.AgentDefinition{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if strings.TrimSpace(schema.ID) == "" {
		return domain.AgentDefinition{}, fmt.Errorf("decode %s: id is required", path)
	}

	return fromAgentSchema(schema, path), nil
}
