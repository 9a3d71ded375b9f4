package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsphweid/voicelead/cmd"
	"github.com/jsphweid/voicelead/model"
	"github.com/stretchr/testify/assert"
)

func createResolveReqBody(chords ...model.ChordEntry) io.Reader {
	data, err := json.Marshal(model.ResolveRequestBody{Chords: chords})
	if err != nil {
		panic(err.Error())
	}
	return bytes.NewReader(data)
}

func post(body io.Reader) *http.Response {
	req := httptest.NewRequest(http.MethodPost, "/resolve", body)
	w := httptest.NewRecorder()
	cmd.NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func TestResolveFM7E2E(t *testing.T) {
	resp := post(createResolveReqBody(model.ChordEntry{Time: 0, Name: "FM7"}))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var resolveResponse model.ResolveResponse
	err := json.Unmarshal(respBody, &resolveResponse)
	if err != nil {
		panic(err.Error())
	}

	assert.NotEmpty(resolveResponse.Id)
	assert.Empty(resolveResponse.Relaxations)
	var keys []int
	for _, n := range resolveResponse.Notes {
		keys = append(keys, n.Key)
		assert.Equal(1.0, n.Duration)
		assert.Equal(64.0, n.Velocity)
	}
	assert.Equal([]int{53, 57, 60, 64}, keys)
}

func TestResolveProgressionE2E(t *testing.T) {
	pcs := int(model.FromPitchClasses(0, 4, 7))
	top := 72
	resp := post(createResolveReqBody(
		model.ChordEntry{Time: 0, PCS: &pcs},
		model.ChordEntry{Time: 1, Top: &top},
	))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)

	var resolveResponse model.ResolveResponse
	assert.NoError(json.Unmarshal(respBody, &resolveResponse))
	assert.Len(resolveResponse.Notes, 6)
	last := resolveResponse.Notes[len(resolveResponse.Notes)-1]
	assert.Equal(72, last.Key)
	assert.Equal(1.0, last.Time)
}

func TestResolveUnknownChordE2E(t *testing.T) {
	resp := post(createResolveReqBody(model.ChordEntry{Time: 0, Name: "Xyz9"}))
	respBody, _ := io.ReadAll(resp.Body)

	assert := assert.New(t)
	assert.Equal(400, resp.StatusCode)

	var errResponse model.ErrorResponse
	assert.NoError(json.Unmarshal(respBody, &errResponse))
	assert.Contains(errResponse.Error, "unknown chord name")
}

func TestResolveBadBodyE2E(t *testing.T) {
	resp := post(bytes.NewReader([]byte("{")))
	assert.Equal(t, 400, resp.StatusCode)

	resp = post(createResolveReqBody())
	assert.Equal(t, 400, resp.StatusCode)
}
