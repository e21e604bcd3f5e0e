package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const readHeaderTimeout = 5 * time.Second

type runningChecker interface {
	IsRunning() bool
}

type status struct {
	Status string `json:"status"`
}

func NewHealthCheckServer(listen, path string, handler http.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	return &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// DefaultHandler reports DOWN once the manager is no longer running its workers.
func DefaultHandler(manager runningChecker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		res := status{Status: "UP"}
		if !manager.IsRunning() {
			res.Status = "DOWN"
			w.WriteHeader(http.StatusServiceUnavailable)
		}

		if err := json.NewEncoder(w).Encode(res); err != nil {
			log.Error().Err(err).Msg("write health status")
		}
	})
}
