package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/dealflow-labs/sponsorship-board/internal/agreement"
	"github.com/dealflow-labs/sponsorship-board/internal/config"
	"github.com/dealflow-labs/sponsorship-board/internal/metrics"
	"github.com/dealflow-labs/sponsorship-board/internal/store"
)

const maxBodySize = 1 << 20

var ErrBadRequest = errors.New("bad request")

type errorResponse struct {
	Error string `json:"error"`
}

// Server exposes the store and the board projection over HTTP.
type Server struct {
	store *store.Store
}

func NewServer(s *store.Store) *Server {
	return &Server{store: s}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.RequestWatcher)

	r.HandleFunc("/agreements", s.listAgreements).Methods(http.MethodGet)
	r.HandleFunc("/agreements", s.createAgreement).Methods(http.MethodPost)
	r.HandleFunc("/agreements:bulk", s.replaceAgreements).Methods(http.MethodPut)
	r.HandleFunc("/agreements/{id}", s.getAgreement).Methods(http.MethodGet)
	r.HandleFunc("/agreements/{id}", s.updateAgreement).Methods(http.MethodPatch)
	r.HandleFunc("/agreements/{id}", s.deleteAgreement).Methods(http.MethodDelete)
	r.HandleFunc("/agreements/{id}/status", s.changeStatus).Methods(http.MethodPut)

	r.HandleFunc("/board", s.getBoard).Methods(http.MethodGet)
	r.HandleFunc("/filters", s.getFilters).Methods(http.MethodGet)
	r.HandleFunc("/filters", s.setFilters).Methods(http.MethodPut)
	r.HandleFunc("/selection", s.getSelection).Methods(http.MethodGet)
	r.HandleFunc("/selection", s.setSelection).Methods(http.MethodPut)

	r.HandleFunc("/notifications", s.listNotifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications", s.addNotification).Methods(http.MethodPost)
	r.HandleFunc("/notifications", s.clearNotifications).Methods(http.MethodDelete)
	r.HandleFunc("/notifications/{id}/read", s.markNotificationRead).Methods(http.MethodPost)

	r.HandleFunc("/achievements", s.listAchievements).Methods(http.MethodGet)
	r.HandleFunc("/achievements/{id}/unlock", s.unlockAchievement).Methods(http.MethodPost)

	r.HandleFunc("/dashboard", s.getDashboard).Methods(http.MethodGet)
	r.HandleFunc("/user", s.getUser).Methods(http.MethodGet)
	r.HandleFunc("/user", s.setUser).Methods(http.MethodPut)
	r.HandleFunc("/theme", s.setTheme).Methods(http.MethodPut)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
	})

	return r
}

func NewHTTPServer(cfg config.API, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode body: %v", ErrBadRequest, err)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, agreement.ErrInvalidField),
		errors.Is(err, agreement.ErrInvalidStatus),
		errors.Is(err, agreement.ErrInvalidPriority),
		errors.Is(err, agreement.ErrInvalidDuration):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Msg("handle request")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
