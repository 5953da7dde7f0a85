// Package http is the command/read surface the view layer talks to. It is
// deliberately thin: strict input parsing happens here, at the entry form
// boundary, and everything else is delegated to the state store.
package http

import (
	"net/http"
	"time"

	"github.com/jaas29/DinFlow/internal/log"
	"github.com/jaas29/DinFlow/internal/state"
)

type Server struct {
	http.Server
	store  *state.Store
	logger *log.Logger
}

func NewServer(addr string, store *state.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	s := &Server{
		store:  store,
		logger: logger.WithComponent(log.ComponentHTTP),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/user", s.handleSetUser)
	mux.HandleFunc("PATCH /api/user/settings", s.handleUpdateSettings)
	mux.HandleFunc("POST /api/expenses", s.handleAddExpense)
	mux.HandleFunc("POST /api/incomes", s.handleAddIncome)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("DELETE /api/expenses", s.handleDeleteAllExpenses)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	s.Server = http.Server{
		Addr:    addr,
		Handler: s.withRequestLog(mux),
	}
	return s
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.InfoContext(r.Context(), "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}
