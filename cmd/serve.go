package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/db"
	"github.com/jsphweid/voicelead/logger"
	"github.com/jsphweid/voicelead/model"
	"github.com/jsphweid/voicelead/voicelead"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

type progressionStore interface {
	SaveProgression(p model.Progression) error
	GetProgression(id string) (model.Progression, error)
}

// limits on a single /resolve request
const (
	maxRequestBytes = 1 << 20
	maxChords       = 1000
)

// nil unless serving with --persist
var store progressionStore

var servePersist bool

func init() {
	serveCmd.Flags().BoolVar(&servePersist, "persist", false, "store every resolved progression in DynamoDB")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the voice-leading HTTP API",
	Long:  `Serves POST /resolve and, with --persist, GET /progressions/{id} on LISTEN_ADDR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if servePersist {
			s, err := db.Connect()
			if err != nil {
				return err
			}
			store = s
		}
		addr := constants.GetListenAddr()
		logger.Info("listening", logger.Fields{"addr": addr, "persist": servePersist})
		return http.ListenAndServe(addr, NewRouter())
	},
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/resolve", HandleResolve).Methods("POST")
	router.HandleFunc("/progressions/{id}", HandleGetProgression).Methods("GET")
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("could not write response", err, nil)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func toResponse(id string, res *voicelead.Resolution) model.ResolveResponse {
	resp := model.ResolveResponse{
		Id:          id,
		Notes:       append(make([]model.NoteEvent, 0, len(res.Notes)), res.Notes...),
		Relaxations: make([]model.Relaxation, 0, len(res.Relaxations)),
	}
	for _, r := range res.Relaxations {
		resp.Relaxations = append(resp.Relaxations, model.Relaxation{Time: r.Time, Reason: r.String()})
	}
	return resp
}

func HandleResolve(w http.ResponseWriter, r *http.Request) {
	var input model.ResolveRequestBody
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("Could not parse request body: "+err.Error()))
		return
	}
	if len(input.Chords) > maxChords {
		writeError(w, http.StatusBadRequest, fmt.Errorf("at most %d chords per request, got %d", maxChords, len(input.Chords)))
		return
	}
	if input.DefaultDuration < 0 {
		writeError(w, http.StatusBadRequest, voicelead.ErrInvalidOptions)
		return
	}

	res, err := resolveEntries(voicelead.DefaultOptions(), input.Chords, input.DefaultDuration)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := toResponse(uuid.New().String(), res)
	if store != nil {
		p := model.Progression{
			Id:          resp.Id,
			Chords:      input.Chords,
			Notes:       resp.Notes,
			Relaxations: resp.Relaxations,
			CreatedAt:   time.Now().Unix(),
		}
		if err := store.SaveProgression(p); err != nil {
			logger.Error("could not save progression", err, logger.Fields{"id": resp.Id})
			writeError(w, http.StatusInternalServerError, err)
			return
		}
	}
	logger.Info("resolved", logger.Fields{"id": resp.Id, "chords": len(input.Chords), "relaxations": len(resp.Relaxations)})
	writeJSON(w, http.StatusOK, resp)
}

func HandleGetProgression(w http.ResponseWriter, r *http.Request) {
	if store == nil {
		writeError(w, http.StatusNotFound, errors.New("progressions are not persisted"))
		return
	}
	p, err := store.GetProgression(mux.Vars(r)["id"])
	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case err != nil:
		logger.Error("could not load progression", err, nil)
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusOK, p)
	}
}
