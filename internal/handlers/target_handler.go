package handlers

import (
	"log/slog"
	"net/http"

	"github.com/asakaida/annostore/internal/services"
)

// TargetHandler handles /targets and /targets/{target_iri}
type TargetHandler struct {
	targetService services.TargetServiceInterface
	maxBodyBytes  int64
	logger        *slog.Logger
}

// NewTargetHandler creates a new TargetHandler
func NewTargetHandler(targetService services.TargetServiceInterface, maxBodyBytes int64, logger *slog.Logger) *TargetHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TargetHandler{
		targetService: targetService,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger,
	}
}

// Collection dispatches requests on /targets
func (h *TargetHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	default:
		notImplemented(w, r)
	}
}

// Item dispatches requests on /targets/{target_iri}
func (h *TargetHandler) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.create(w, r)
	default:
		notImplemented(w, r)
	}
}

func (h *TargetHandler) list(w http.ResponseWriter, r *http.Request) {
	targets, err := h.targetService.ListTargets(r.Context())
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, targetBodies(targets))
}

func (h *TargetHandler) get(w http.ResponseWriter, r *http.Request) {
	target, err := h.targetService.GetTarget(r.Context(), r.PathValue(targetIRIParam))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeDocument(w, target.Body)
}

func (h *TargetHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r, w, h.maxBodyBytes)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	location, err := h.targetService.CreateTarget(r.Context(), r.PathValue(targetIRIParam), body)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeCreated(w, location)
}
