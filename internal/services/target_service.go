package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/asakaida/annostore/internal/entities"
	"github.com/asakaida/annostore/internal/repositories"
)

// TargetServiceInterface defines the interface for target operations
type TargetServiceInterface interface {
	ListTargets(ctx context.Context) ([]*entities.Target, error)
	GetTarget(ctx context.Context, iri string) (*entities.Target, error)
	CreateTarget(ctx context.Context, iri string, body []byte) (string, error)
}

// TargetService handles target registration and lookup
type TargetService struct {
	targetRepo repositories.TargetRepository
	logger     *slog.Logger
}

// NewTargetService creates a new TargetService
func NewTargetService(targetRepo repositories.TargetRepository, logger *slog.Logger) *TargetService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TargetService{
		targetRepo: targetRepo,
		logger:     logger,
	}
}

// ListTargets returns all targets in creation order
func (s *TargetService) ListTargets(ctx context.Context) ([]*entities.Target, error) {
	targets, err := s.targetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	return targets, nil
}

// GetTarget retrieves a target by IRI
func (s *TargetService) GetTarget(ctx context.Context, iri string) (*entities.Target, error) {
	target, err := s.targetRepo.Get(ctx, iri)
	if err != nil {
		return nil, fmt.Errorf("failed to get target: %w", err)
	}
	return target, nil
}

// CreateTarget validates and stores a new target under iri.
// It returns the location of the new target, built from the body's "id".
func (s *TargetService) CreateTarget(ctx context.Context, iri string, body []byte) (string, error) {
	target, err := entities.NewTarget(iri, body)
	if err != nil {
		return "", fmt.Errorf("invalid target: %w", err)
	}

	if err := s.targetRepo.Create(ctx, target); err != nil {
		return "", fmt.Errorf("failed to create target: %w", err)
	}

	s.logger.DebugContext(ctx, "target created", "iri", target.IRI, "id", target.ID)
	return target.Location(), nil
}
