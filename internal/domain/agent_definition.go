package domain

import (
	"fmt"
	"strings"
)

type NodeID string

type AgentDefinition struct {
	ID         NodeID
	Name       string
	Parameters LLMParameters
	// Source is the file the definition was loaded from, if any.
	Source string
}

func (d AgentDefinition) Validate() error {
	if strings.TrimSpace(string(d.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := d.Parameters.Validate(); err != nil {
		return fmt.Errorf("agent %s: %w", d.ID, err)
	}

	return nil
}
