package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/asakaida/annostore/internal/entities"
)

// === Shared Helper Functions for all handlers ===

// urlResponse is the body returned by successful PUT requests
type urlResponse struct {
	URL string `json:"url"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDocument writes a stored document exactly as it was received
func writeDocument(w http.ResponseWriter, doc *entities.Document) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Raw())
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeCreated(w http.ResponseWriter, location string) {
	w.Header().Set("Location", location)
	writeJSON(w, http.StatusCreated, urlResponse{URL: location})
}

// readBody reads at most limit bytes of the request body.
// A body over the limit is reported as invalid input.
func readBody(r *http.Request, w http.ResponseWriter, limit int64) ([]byte, error) {
	defer r.Body.Close()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &entities.ValidationError{Field: "body", Reason: "is too large"}
		}
		return nil, &entities.ValidationError{Field: "body", Reason: "could not be read"}
	}
	return body, nil
}

func notImplemented(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotImplemented, "method "+r.Method+" is not supported")
}

// handleServiceError maps service errors to HTTP status codes
func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, entities.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func targetBodies(targets []*entities.Target) []*entities.Document {
	out := make([]*entities.Document, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.Body)
	}
	return out
}

func annotationBodies(annotations []*entities.Annotation) []*entities.Document {
	out := make([]*entities.Document, 0, len(annotations))
	for _, a := range annotations {
		out = append(out, a.Body)
	}
	return out
}
