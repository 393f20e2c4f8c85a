package entities

import (
	"errors"
	"testing"
)

func TestParseDocument(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "object", data: `{"id": "t1"}`, wantErr: false},
		{name: "empty object", data: `{}`, wantErr: false},
		{name: "surrounding whitespace", data: "\n  {\"id\": \"t1\"}\n", wantErr: false},
		{name: "empty body", data: ``, wantErr: true},
		{name: "whitespace only", data: "  \n", wantErr: true},
		{name: "array", data: `[{"id": "t1"}]`, wantErr: true},
		{name: "string", data: `"t1"`, wantErr: true},
		{name: "null", data: `null`, wantErr: true},
		{name: "truncated", data: `{"id": "t1"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDocument() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if doc == nil {
				t.Fatal("expected document")
			}
		})
	}
}

func TestDocument_MarshalJSON_Verbatim(t *testing.T) {
	data := `{"zeta": 1, "id": "t1", "nested": {"b": [1, 2], "a": null}}`

	doc, err := ParseDocument([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := doc.MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != data {
		t.Errorf("MarshalJSON() = %s, want %s", got, data)
	}
}

func TestDocument_RawIsCopy(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"id": "t1"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw := doc.Raw()
	raw[0] = 'X'

	if string(doc.Raw()) != `{"id": "t1"}` {
		t.Errorf("mutating Raw() result changed the document: %s", doc.Raw())
	}
}

func TestDocument_NonEmpty(t *testing.T) {
	doc, err := ParseDocument([]byte(`{
		"null": null,
		"emptyString": "",
		"emptyArray": [],
		"emptyObject": {},
		"string": "x",
		"array": ["x"],
		"object": {"source": "x"},
		"number": 0,
		"bool": false
	}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		field string
		want  bool
	}{
		{"missing", false},
		{"null", false},
		{"emptyString", false},
		{"emptyArray", false},
		{"emptyObject", false},
		{"string", true},
		{"array", true},
		{"object", true},
		{"number", true},
		{"bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := doc.NonEmpty(tt.field); got != tt.want {
				t.Errorf("NonEmpty(%q) = %v, want %v", tt.field, got, tt.want)
			}
		})
	}
}

func TestDocument_String(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"id": "a b", "n": 5}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, ok := doc.String("id"); !ok || got != "a b" {
		t.Errorf(`String("id") = %q, %v, want "a b", true`, got, ok)
	}
	if _, ok := doc.String("n"); ok {
		t.Error(`String("n") should not accept a number`)
	}
	if _, ok := doc.String("missing"); ok {
		t.Error(`String("missing") should be false`)
	}
	if !doc.Has("n") || doc.Has("missing") {
		t.Error("Has() reported wrong presence")
	}
}
