// Package memory provides the process-local store behind the annotation API.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/asakaida/annostore/internal/entities"
	"github.com/asakaida/annostore/internal/repositories"
)

// Store owns targets, annotations and the target -> annotation IRI mapping.
// All three are guarded by one lock so an annotation write, which touches
// two of them, is never observed half-applied.
type Store struct {
	mu sync.RWMutex

	targets       map[string]*entities.Target     // target IRI -> target
	targetOrder   []string                        // target IRIs in creation order
	annotations   map[string]*entities.Annotation // annotation IRI -> annotation
	annotationsOf map[string][]string             // target IRI -> owned annotation IRIs

	now func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		targets:       make(map[string]*entities.Target),
		annotations:   make(map[string]*entities.Annotation),
		annotationsOf: make(map[string][]string),
		now:           time.Now,
	}
}

// Targets returns the store as a TargetRepository
func (s *Store) Targets() repositories.TargetRepository {
	return targetRepository{s}
}

// Annotations returns the store as an AnnotationRepository
func (s *Store) Annotations() repositories.AnnotationRepository {
	return annotationRepository{s}
}

// Stats returns the current entity counts
func (s *Store) Stats(ctx context.Context) repositories.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return repositories.Stats{
		Targets:     len(s.targets),
		Annotations: len(s.annotations),
	}
}

type targetRepository struct{ s *Store }

func (r targetRepository) Create(ctx context.Context, target *entities.Target) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.targets[target.IRI]; exists {
		return fmt.Errorf("target %q: %w", target.IRI, entities.ErrAlreadyExists)
	}

	stored := *target
	stored.CreatedAt = s.now()

	s.targets[stored.IRI] = &stored
	s.targetOrder = append(s.targetOrder, stored.IRI)
	s.annotationsOf[stored.IRI] = []string{}

	target.CreatedAt = stored.CreatedAt
	return nil
}

func (r targetRepository) Get(ctx context.Context, iri string) (*entities.Target, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	target, ok := s.targets[iri]
	if !ok {
		return nil, fmt.Errorf("target %q: %w", iri, entities.ErrNotFound)
	}

	out := *target
	return &out, nil
}

func (r targetRepository) List(ctx context.Context) ([]*entities.Target, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Target, 0, len(s.targetOrder))
	for _, iri := range s.targetOrder {
		target := *s.targets[iri]
		out = append(out, &target)
	}
	return out, nil
}

type annotationRepository struct{ s *Store }

func (r annotationRepository) Create(ctx context.Context, annotation *entities.Annotation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	owned, ok := s.annotationsOf[annotation.TargetIRI]
	if _, exists := s.targets[annotation.TargetIRI]; !exists || !ok {
		return fmt.Errorf("target %q: %w", annotation.TargetIRI, entities.ErrNotFound)
	}
	if _, exists := s.annotations[annotation.IRI]; exists {
		return fmt.Errorf("annotation %q: %w", annotation.IRI, entities.ErrAlreadyExists)
	}

	stored := *annotation
	stored.CreatedAt = s.now()

	s.annotations[stored.IRI] = &stored
	s.annotationsOf[stored.TargetIRI] = append(owned, stored.IRI)

	annotation.CreatedAt = stored.CreatedAt
	return nil
}

func (r annotationRepository) Get(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.targets[targetIRI]; !exists {
		return nil, fmt.Errorf("target %q: %w", targetIRI, entities.ErrNotFound)
	}
	annotation, ok := s.annotations[iri]
	if !ok {
		return nil, fmt.Errorf("annotation %q: %w", iri, entities.ErrNotFound)
	}
	if !slices.Contains(s.annotationsOf[targetIRI], iri) {
		return nil, fmt.Errorf("annotation %q under target %q: %w", iri, targetIRI, entities.ErrNotFound)
	}

	out := *annotation
	return &out, nil
}

func (r annotationRepository) ListByTarget(ctx context.Context, targetIRI string) ([]*entities.Annotation, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned, ok := s.annotationsOf[targetIRI]
	if _, exists := s.targets[targetIRI]; !exists || !ok {
		return nil, fmt.Errorf("target %q: %w", targetIRI, entities.ErrNotFound)
	}

	out := make([]*entities.Annotation, 0, len(owned))
	for _, iri := range owned {
		annotation := *s.annotations[iri]
		out = append(out, &annotation)
	}
	return out, nil
}
