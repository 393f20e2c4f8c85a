package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asakaida/annostore/internal/entities"
	"github.com/asakaida/annostore/internal/repositories"
)

// AnnotationServiceInterface defines the interface for annotation operations
type AnnotationServiceInterface interface {
	ListAnnotations(ctx context.Context, targetIRI string) ([]*entities.Annotation, error)
	GetAnnotation(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error)
	CreateAnnotation(ctx context.Context, targetIRI string, iri string, body []byte) (string, error)
}

// AnnotationService handles annotations scoped to their owning target
type AnnotationService struct {
	targetRepo     repositories.TargetRepository
	annotationRepo repositories.AnnotationRepository
	logger         *slog.Logger
}

// NewAnnotationService creates a new AnnotationService
func NewAnnotationService(
	targetRepo repositories.TargetRepository,
	annotationRepo repositories.AnnotationRepository,
	logger *slog.Logger,
) *AnnotationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnotationService{
		targetRepo:     targetRepo,
		annotationRepo: annotationRepo,
		logger:         logger,
	}
}

// ListAnnotations returns the target's annotations in attachment order
func (s *AnnotationService) ListAnnotations(ctx context.Context, targetIRI string) ([]*entities.Annotation, error) {
	annotations, err := s.annotationRepo.ListByTarget(ctx, targetIRI)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return annotations, nil
}

// GetAnnotation retrieves an annotation owned by the target
func (s *AnnotationService) GetAnnotation(ctx context.Context, targetIRI string, iri string) (*entities.Annotation, error) {
	annotation, err := s.annotationRepo.Get(ctx, targetIRI, iri)
	if err != nil {
		return nil, fmt.Errorf("failed to get annotation: %w", err)
	}
	return annotation, nil
}

// CreateAnnotation attaches a new annotation to the target.
// An unknown target is reported before the body is looked at; shape
// violations are reported before IRI conflicts.
func (s *AnnotationService) CreateAnnotation(ctx context.Context, targetIRI string, iri string, body []byte) (string, error) {
	if _, err := s.targetRepo.Get(ctx, targetIRI); err != nil {
		return "", fmt.Errorf("failed to get target: %w", err)
	}

	annotation, err := entities.NewAnnotation(targetIRI, iri, body)
	if err != nil {
		return "", fmt.Errorf("invalid annotation: %w", err)
	}

	if err := s.annotationRepo.Create(ctx, annotation); err != nil {
		return "", fmt.Errorf("failed to create annotation: %w", err)
	}

	s.logger.DebugContext(ctx, "annotation created",
		"target_iri", annotation.TargetIRI,
		"iri", annotation.IRI,
		"id", annotation.ID)
	return annotation.Location(), nil
}
