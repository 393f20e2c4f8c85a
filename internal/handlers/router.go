package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/asakaida/annostore/internal/services"
)

const (
	targetIRIParam     = "target_iri"
	annotationIRIParam = "annotation_iri"
)

// Route names used as metric labels
const (
	RouteTargets     = "targets"
	RouteTarget      = "target"
	RouteAnnotations = "annotations"
	RouteAnnotation  = "annotation"
)

// DefaultMaxBodyBytes bounds PUT bodies when RouterConfig leaves it unset
const DefaultMaxBodyBytes int64 = 2 << 20

// RouterConfig holds optional router settings
type RouterConfig struct {
	MaxBodyBytes int64
	// Instrument wraps each route handler, e.g. with metrics. May be nil.
	Instrument func(route string, next http.Handler) http.Handler
	Logger     *slog.Logger
}

// NewRouter registers the store routes on a new ServeMux.
// Path values are percent-decoded by the mux. Paths with a trailing
// slash or extra segments match nothing and get 404. An empty segment
// inside a /targets path is rejected with 400 before the mux can clean
// the path and redirect.
func NewRouter(
	targetService services.TargetServiceInterface,
	annotationService services.AnnotationServiceInterface,
	cfg RouterConfig,
) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	instrument := cfg.Instrument
	if instrument == nil {
		instrument = func(_ string, next http.Handler) http.Handler { return next }
	}

	targets := NewTargetHandler(targetService, cfg.MaxBodyBytes, cfg.Logger)
	annotations := NewAnnotationHandler(annotationService, cfg.MaxBodyBytes, cfg.Logger)

	mux := http.NewServeMux()
	mux.Handle("/targets",
		instrument(RouteTargets, http.HandlerFunc(targets.Collection)))
	mux.Handle("/targets/{target_iri}",
		instrument(RouteTarget, http.HandlerFunc(targets.Item)))
	mux.Handle("/targets/{target_iri}/annotations",
		instrument(RouteAnnotations, http.HandlerFunc(annotations.Collection)))
	mux.Handle("/targets/{target_iri}/annotations/{annotation_iri}",
		instrument(RouteAnnotation, http.HandlerFunc(annotations.Item)))
	return rejectEmptySegments(mux)
}

// rejectEmptySegments answers 400 for /targets paths containing "//".
func rejectEmptySegments(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.EscapedPath()
		if strings.HasPrefix(path, "/targets/") && strings.Contains(path, "//") {
			writeError(w, http.StatusBadRequest, "path contains an empty segment")
			return
		}
		next.ServeHTTP(w, r)
	})
}
