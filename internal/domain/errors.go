package domain

import "errors"

var (
	ErrNodeNotFound            = errors.New("node not found")
	ErrAgentDefinitionNotFound = errors.New("agent definition not found")
	ErrRouteNotFound           = errors.New("route not found")
	ErrSecretNotFound          = errors.New("secret not found")
	ErrEmptyNodeID             = errors.New("node id is empty")
	ErrNilNode                 = errors.New("node is nil")
	ErrEmptyPipeline           = errors.New("pipeline has no nodes")
)
