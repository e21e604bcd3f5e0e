package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestWatcher is a mux middleware measuring every request by its route template.
func RequestWatcher(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func(start time.Time) {
			var err error
			if rec.status >= http.StatusInternalServerError {
				err = fmt.Errorf("status %d", rec.status)
			}

			CollectRequestsMetric(routeName(r), r.Method, err, start)
		}(time.Now())

		next.ServeHTTP(rec, r)
	})
}

func routeName(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unknown"
	}

	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}

	return tpl
}
