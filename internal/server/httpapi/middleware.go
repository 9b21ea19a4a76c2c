package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// statusRecorder remembers the status written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func routeOf(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// accessLog tags the request with an id, logs it when done and feeds the
// request metrics.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		log := s.logger.With("request_id", requestID)
		r = r.WithContext(logging.IntoContext(r.Context(), log))

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeOf(r)
		took := time.Since(start)
		if s.metrics != nil {
			s.metrics.ObserveRequest(route, r.Method, rec.status, took)
		}
		log.Info(r.Context(), "request",
			"method", r.Method, "route", route, "status", rec.status, "duration", took)
	})
}

// authenticate resolves X-Token to its user and stores both in the request
// context. A session whose user no longer exists is rejected like an
// expired one.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(common.TokenHeaderName)

		u, err := s.users.Me(r.Context(), token)
		if err != nil {
			writeError(w, r, err)
			return
		}

		r = r.WithContext(withUser(r.Context(), u, token))
		next.ServeHTTP(w, r)
	})
}
