package ports

import (
	"context"

	"github.com/bnema/synapse-cli/internal/domain"
)

// Node is a processing unit addressable by id. Push reports failure through
// its return value and the record later returned by Pull; it never panics.
// Pull returns a copy of the last stored output, or an empty record.
type Node interface {
	ID() string
	Push(ctx context.Context, record domain.Record) bool
	Pull() domain.Record
}
