package server

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

// statusRecorder captures the response code for request metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument counts requests per route and status.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.requestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}

// requireSession guards the display control endpoints. Data endpoints stay
// open: the TV client reads them before any operator has signed in.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cfg.SessionCookie)
		if err != nil || !s.sessions.Validate(cookie.Value) {
			logrus.Debugf("Rejected unauthenticated request to %s", r.URL.Path)
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}
		next(w, r)
	}
}
