package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/asakaida/annostore/internal/entities"
	"github.com/asakaida/annostore/internal/services"
)

// AnnotationHandler handles /targets/{target_iri}/annotations[/{annotation_iri}]
type AnnotationHandler struct {
	annotationService services.AnnotationServiceInterface
	maxBodyBytes      int64
	logger            *slog.Logger
}

// NewAnnotationHandler creates a new AnnotationHandler
func NewAnnotationHandler(annotationService services.AnnotationServiceInterface, maxBodyBytes int64, logger *slog.Logger) *AnnotationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnnotationHandler{
		annotationService: annotationService,
		maxBodyBytes:      maxBodyBytes,
		logger:            logger,
	}
}

// Collection dispatches requests on /targets/{target_iri}/annotations
func (h *AnnotationHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	default:
		notImplemented(w, r)
	}
}

// Item dispatches requests on /targets/{target_iri}/annotations/{annotation_iri}
func (h *AnnotationHandler) Item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.create(w, r)
	default:
		notImplemented(w, r)
	}
}

func (h *AnnotationHandler) list(w http.ResponseWriter, r *http.Request) {
	annotations, err := h.annotationService.ListAnnotations(r.Context(), r.PathValue(targetIRIParam))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, annotationBodies(annotations))
}

func (h *AnnotationHandler) get(w http.ResponseWriter, r *http.Request) {
	annotation, err := h.annotationService.GetAnnotation(r.Context(),
		r.PathValue(targetIRIParam),
		r.PathValue(annotationIRIParam))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeDocument(w, annotation.Body)
}

// create leaves all body checks to the service so that an unknown target
// is reported even when the body is unreadable.
func (h *AnnotationHandler) create(w http.ResponseWriter, r *http.Request) {
	body, readErr := readBody(r, w, h.maxBodyBytes)

	location, err := h.annotationService.CreateAnnotation(r.Context(),
		r.PathValue(targetIRIParam),
		r.PathValue(annotationIRIParam),
		body)
	if readErr != nil && !errors.Is(err, entities.ErrNotFound) {
		err = readErr
	}
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	writeCreated(w, location)
}
