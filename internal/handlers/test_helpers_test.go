package handlers

import (
	"context"

	"github.com/asakaida/annostore/internal/entities"
)

// Mock TargetService
type mockTargetService struct {
	listTargetsFunc  func(ctx context.Context) ([]*entities.Target, error)
	getTargetFunc    func(ctx context.Context, iri string) (*entities.Target, error)
	createTargetFunc func(ctx context.Context, iri string, body []byte) (string, error)
}

func (m *mockTargetService) ListTargets(ctx context.Context) ([]*entities.Target, error) {
	if m.listTargetsFunc != nil {
		return m.listTargetsFunc(ctx)
	}
	return []*entities.Target{}, nil
}

func (m *mockTargetService) GetTarget(ctx context.Context, iri string) (*entities.Target, error) {
	if m.getTargetFunc != nil {
		return m.getTargetFunc(ctx, iri)
	}
	return nil, entities.ErrNotFound
}

func (m *mockTargetService) CreateTarget(ctx context.Context, iri string, body []byte) (string, error) {
	if m.createTargetFunc != nil {
		return m.createTargetFunc(ctx, iri, body)
	}
	return "/targets/" + iri, nil
}

// Mock AnnotationService
type mockAnnotationService struct {
	listAnnotationsFunc  func(ctx context.Context, targetIRI string) ([]*entities.Annotation, error)
	getAnnotationFunc    func(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error)
	createAnnotationFunc func(ctx context.Context, targetIRI string, iri string, body []byte) (string, error)
}

func (m *mockAnnotationService) ListAnnotations(ctx context.Context, targetIRI string) ([]*entities.Annotation, error) {
	if m.listAnnotationsFunc != nil {
		return m.listAnnotationsFunc(ctx, targetIRI)
	}
	return []*entities.Annotation{}, nil
}

func (m *mockAnnotationService) GetAnnotation(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error) {
	if m.getAnnotationFunc != nil {
		return m.getAnnotationFunc(ctx, targetIRI, iri)
	}
	return nil, entities.ErrNotFound
}

func (m *mockAnnotationService) CreateAnnotation(ctx context.Context, targetIRI string, iri string, body []byte) (string, error) {
	if m.createAnnotationFunc != nil {
		return m.createAnnotationFunc(ctx, targetIRI, iri, body)
	}
	return "/targets/" + targetIRI + "/annotations/" + iri, nil
}
