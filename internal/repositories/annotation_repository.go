package repositories

import (
	"context"

	"github.com/asakaida/annostore/internal/entities"
)

// AnnotationRepository defines the interface for annotation data access.
// Annotation IRIs are unique across all targets, and each annotation is owned
// by exactly one target.
type AnnotationRepository interface {
	// Create stores the annotation and appends its IRI to the owning target's
	// sequence in one step. Returns an error wrapping entities.ErrNotFound if
	// the target does not exist, or entities.ErrAlreadyExists if the
	// annotation IRI is taken under any target.
	Create(ctx context.Context, annotation *entities.Annotation) error

	// Get retrieves an annotation owned by the given target.
	// An annotation owned by another target is reported as not found.
	Get(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error)

	// ListByTarget returns the target's annotations in attachment order
	ListByTarget(ctx context.Context, targetIRI string) ([]*entities.Annotation, error)
}
