package entities

import (
	"time"
)

// Required values of a W3C Web Annotation document.
const (
	AnnotationContext = "http://www.w3.org/ns/anno.jsonld"
	AnnotationType    = "Annotation"
)

// Annotation represents a Web Annotation Data Model document attached to a target.
// The "target" field of the body is only checked for presence; it is not
// resolved against stored targets.
type Annotation struct {
	IRI       string    // Path segment key, unique across all targets
	TargetIRI string    // IRI of the owning target
	ID        string    // Client-supplied "id" field of the body
	Body      *Document // Body exactly as received
	CreatedAt time.Time
}

// NewAnnotation validates a creation request and builds the annotation.
// The first failing rule is reported, in this order:
// annotation IRI, body, @context, type, id, target.
func NewAnnotation(targetIRI, iri string, body []byte) (*Annotation, error) {
	if iri == "" {
		return nil, invalid("annotation IRI", "is required")
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return nil, err
	}

	if err := requireLiteral(doc, "@context", AnnotationContext); err != nil {
		return nil, err
	}
	if err := requireLiteral(doc, "type", AnnotationType); err != nil {
		return nil, err
	}
	id, err := requireID(doc)
	if err != nil {
		return nil, err
	}
	if !doc.NonEmpty("target") {
		return nil, invalid("target", "is required")
	}

	return &Annotation{
		IRI:       iri,
		TargetIRI: targetIRI,
		ID:        id,
		Body:      doc,
	}, nil
}

func requireLiteral(doc *Document, field, want string) error {
	if !doc.Has(field) {
		return invalid(field, "is required")
	}
	if got, ok := doc.String(field); !ok || got != want {
		return invalid(field, "must be "+want)
	}
	return nil
}

// Location returns the URL path reported back to the client on creation.
func (a *Annotation) Location() string {
	return "/targets/" + escapeSegment(a.TargetIRI) + "/annotations/" + escapeSegment(a.ID)
}
