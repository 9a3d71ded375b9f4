package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/voicelead/db"
	"github.com/jsphweid/voicelead/model"
	"github.com/stretchr/testify/assert"
)

type memoryStore map[string]model.Progression

func (m memoryStore) SaveProgression(p model.Progression) error {
	m[p.Id] = p
	return nil
}

func (m memoryStore) GetProgression(id string) (model.Progression, error) {
	p, ok := m[id]
	if !ok {
		return p, fmt.Errorf("%w: %s", db.ErrNotFound, id)
	}
	return p, nil
}

func TestPersistedProgressionCanBeFetched(t *testing.T) {
	mem := memoryStore{}
	store = mem
	defer func() { store = nil }()

	body, _ := json.Marshal(model.ResolveRequestBody{
		Chords:          []model.ChordEntry{{Time: 0, Name: "FM7"}, {Time: 1, Name: "Bbm7"}},
		DefaultDuration: 2,
	})
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewReader(body)))

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	var resp model.ResolveResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(resp.Notes, 8)
	assert.Equal(2.0, resp.Notes[7].Duration)
	assert.Contains(mem, resp.Id)

	w = httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/progressions/"+resp.Id, nil))
	assert.Equal(http.StatusOK, w.Code)
	var p model.Progression
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(resp.Id, p.Id)
	assert.Equal("Bbm7", p.Chords[1].Name)

	w = httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/progressions/missing", nil))
	assert.Equal(http.StatusNotFound, w.Code)
}

func TestProgressionsWithoutPersistence(t *testing.T) {
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/progressions/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCorsPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/resolve", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestResolveRejectsOversizedRequests(t *testing.T) {
	chords := make([]model.ChordEntry, maxChords+1)
	for i := range chords {
		chords[i] = model.ChordEntry{Time: float64(i), Name: "C"}
	}
	body, _ := json.Marshal(model.ResolveRequestBody{Chords: chords})
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewReader(body)))

	assert := assert.New(t)
	assert.Equal(http.StatusBadRequest, w.Code)
	var resp model.ErrorResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(resp.Error, "at most")

	padded := append([]byte(`{"chords":[{"time":0,"name":"C"}],"pad":"`), bytes.Repeat([]byte("x"), maxRequestBytes)...)
	padded = append(padded, []byte(`"}`)...)
	w = httptest.NewRecorder()
	NewRouter().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/resolve", bytes.NewReader(padded)))
	assert.Equal(http.StatusBadRequest, w.Code)
}
