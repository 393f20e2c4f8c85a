package repositories

import (
	"context"

	"github.com/asakaida/annostore/internal/entities"
)

// TargetRepository defines the interface for target data access
type TargetRepository interface {
	// Create stores a new target and initializes its empty annotation sequence.
	// Returns an error wrapping entities.ErrAlreadyExists if the IRI is taken.
	Create(ctx context.Context, target *entities.Target) error

	// Get retrieves a target by IRI.
	// Returns an error wrapping entities.ErrNotFound if it does not exist.
	Get(ctx context.Context, iri string) (*entities.Target, error)

	// List returns all targets in creation order
	List(ctx context.Context) ([]*entities.Target, error)
}
