package entities

import (
	"time"
)

// Target represents a resource that can receive annotations
// Example: PUT /targets/page-1 with body {"id": "page-1", "title": "..."}
// IRI is the path key the target is stored under, ID comes from the body.
type Target struct {
	IRI       string    // Path segment key (percent-decoded)
	ID        string    // Client-supplied "id" field of the body
	Body      *Document // Body exactly as received
	CreatedAt time.Time
}

// NewTarget validates a creation request and builds the target.
// Checks run in order: missing IRI, malformed body, missing or empty "id".
func NewTarget(iri string, body []byte) (*Target, error) {
	if iri == "" {
		return nil, invalid("target IRI", "is required")
	}

	doc, err := ParseDocument(body)
	if err != nil {
		return nil, err
	}

	id, err := requireID(doc)
	if err != nil {
		return nil, err
	}

	return &Target{
		IRI:  iri,
		ID:   id,
		Body: doc,
	}, nil
}

// requireID returns the body's "id", which must be a non-empty string.
func requireID(doc *Document) (string, error) {
	if !doc.Has("id") {
		return "", invalid("id", "is required")
	}
	id, ok := doc.String("id")
	if !ok || id == "" {
		return "", invalid("id", "must be a non-empty string")
	}
	return id, nil
}

// Location returns the URL path reported back to the client on creation.
func (t *Target) Location() string {
	return "/targets/" + escapeSegment(t.ID)
}
