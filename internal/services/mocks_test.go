package services

import (
	"context"

	"github.com/asakaida/annostore/internal/entities"
)

// Mock TargetRepository
type mockTargetRepository struct {
	createFunc func(ctx context.Context, target *entities.Target) error
	getFunc    func(ctx context.Context, iri string) (*entities.Target, error)
	listFunc   func(ctx context.Context) ([]*entities.Target, error)
}

func (m *mockTargetRepository) Create(ctx context.Context, target *entities.Target) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, target)
	}
	return nil
}

func (m *mockTargetRepository) Get(ctx context.Context, iri string) (*entities.Target, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, iri)
	}
	return &entities.Target{IRI: iri, ID: iri}, nil
}

func (m *mockTargetRepository) List(ctx context.Context) ([]*entities.Target, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, nil
}

// Mock AnnotationRepository
type mockAnnotationRepository struct {
	createFunc       func(ctx context.Context, annotation *entities.Annotation) error
	getFunc          func(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error)
	listByTargetFunc func(ctx context.Context, targetIRI string) ([]*entities.Annotation, error)
}

func (m *mockAnnotationRepository) Create(ctx context.Context, annotation *entities.Annotation) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, annotation)
	}
	return nil
}

func (m *mockAnnotationRepository) Get(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, targetIRI, iri)
	}
	return nil, entities.ErrNotFound
}

func (m *mockAnnotationRepository) ListByTarget(ctx context.Context, targetIRI string) ([]*entities.Annotation, error) {
	if m.listByTargetFunc != nil {
		return m.listByTargetFunc(ctx, targetIRI)
	}
	return nil, nil
}
