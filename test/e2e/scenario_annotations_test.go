package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_AnnotationLifecycle(t *testing.T) {
	s := SetupE2ETest(t)
	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/page1", TargetBody("page1")).Status)

	resp := s.Do(t, http.MethodGet, "/targets/page1/annotations", "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[]`, string(resp.Body))

	body := AnnotationBody("http://example.com/anno1", "page1")
	resp = s.Do(t, http.MethodPut, "/targets/page1/annotations/anno1", body)
	require.Equal(t, http.StatusCreated, resp.Status)
	assert.JSONEq(t, `{"url":"/targets/page1/annotations/http%3A%2F%2Fexample.com%2Fanno1"}`, string(resp.Body))
	assert.Equal(t, "/targets/page1/annotations/http%3A%2F%2Fexample.com%2Fanno1", resp.Header.Get("Location"))

	resp = s.Do(t, http.MethodGet, "/targets/page1/annotations/anno1", "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, body, string(resp.Body))

	resp = s.Do(t, http.MethodGet, "/targets/page1/annotations", "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[`+body+`]`, string(resp.Body))
}

func TestE2E_AnnotationValidationOrder(t *testing.T) {
	s := SetupE2ETest(t)
	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t", TargetBody("t")).Status)
	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t/annotations/taken", AnnotationBody("taken", "t")).Status)

	tests := []struct {
		name   string
		target string
		iri    string
		body   string
		want   int
	}{
		{"unknown target before body checks", "missing", "a", `not json`, http.StatusNotFound},
		{"unknown target with taken IRI", "missing", "taken", AnnotationBody("taken", "t"), http.StatusNotFound},
		{"malformed body", "t", "a", `{`, http.StatusBadRequest},
		{"missing context", "t", "a", `{"type":"Annotation","id":"a","target":"t"}`, http.StatusBadRequest},
		{"context array", "t", "a", `{"@context":["` + annoContext + `"],"type":"Annotation","id":"a","target":"t"}`, http.StatusBadRequest},
		{"wrong type", "t", "a", `{"@context":"` + annoContext + `","type":"Comment","id":"a","target":"t"}`, http.StatusBadRequest},
		{"empty id", "t", "a", `{"@context":"` + annoContext + `","type":"Annotation","id":"","target":"t"}`, http.StatusBadRequest},
		{"null target", "t", "a", `{"@context":"` + annoContext + `","type":"Annotation","id":"a","target":null}`, http.StatusBadRequest},
		{"shape before conflict", "t", "taken", `{"type":"Annotation"}`, http.StatusBadRequest},
		{"conflict", "t", "taken", AnnotationBody("taken", "t"), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.Do(t, http.MethodPut, "/targets/"+tt.target+"/annotations/"+tt.iri, tt.body)
			assert.Equal(t, tt.want, resp.Status, string(resp.Body))
		})
	}
}

func TestE2E_AnnotationsScopedToTarget(t *testing.T) {
	s := SetupE2ETest(t)
	for _, id := range []string{"t1", "t2"} {
		require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/"+id, TargetBody(id)).Status)
	}

	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t1/annotations/a1", AnnotationBody("a1", "t1")).Status)

	// Global uniqueness
	assert.Equal(t, http.StatusConflict, s.Do(t, http.MethodPut, "/targets/t2/annotations/a1", AnnotationBody("a1", "t2")).Status)

	// Not visible under another target
	assert.Equal(t, http.StatusNotFound, s.Do(t, http.MethodGet, "/targets/t2/annotations/a1", "").Status)
	resp := s.Do(t, http.MethodGet, "/targets/t2/annotations", "")
	require.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `[]`, string(resp.Body))

	assert.Equal(t, http.StatusNotFound, s.Do(t, http.MethodGet, "/targets/none/annotations", "").Status)
	assert.Equal(t, http.StatusNotFound, s.Do(t, http.MethodGet, "/targets/none/annotations/a1", "").Status)
}

func TestE2E_AnnotationAttachmentOrder(t *testing.T) {
	s := SetupE2ETest(t)
	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t", TargetBody("t")).Status)

	ids := []string{"n3", "n1", "n2"}
	for _, id := range ids {
		require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t/annotations/"+id, AnnotationBody(id, "t")).Status)
	}

	resp := s.Do(t, http.MethodGet, "/targets/t/annotations", "")
	var docs []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body, &docs))
	require.Len(t, docs, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, docs[i].ID)
	}
}

func TestE2E_ConcurrentDistinctAnnotations(t *testing.T) {
	s := SetupE2ETest(t)
	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t", TargetBody("t")).Status)

	const n = 50
	var wg sync.WaitGroup
	statuses := make([]int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("a%d", i)
			statuses[i] = s.Do(t, http.MethodPut, "/targets/t/annotations/"+id, AnnotationBody(id, "t")).Status
		}(i)
	}
	wg.Wait()

	for i, status := range statuses {
		assert.Equal(t, http.StatusCreated, status, "request %d", i)
	}

	resp := s.Do(t, http.MethodGet, "/targets/t/annotations", "")
	var docs []json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body, &docs))
	assert.Len(t, docs, n)
}

func TestE2E_ConcurrentSameAnnotation(t *testing.T) {
	s := SetupE2ETest(t)
	require.Equal(t, http.StatusCreated, s.Do(t, http.MethodPut, "/targets/t", TargetBody("t")).Status)

	const n = 30
	var wg sync.WaitGroup
	var mu sync.Mutex
	counts := map[int]int{}
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status := s.Do(t, http.MethodPut, "/targets/t/annotations/same", AnnotationBody("same", "t")).Status
			mu.Lock()
			counts[status]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, counts[http.StatusCreated])
	assert.Equal(t, n-1, counts[http.StatusConflict])
}
