package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/arthaplan/engine/internal/calculation"
	"github.com/arthaplan/engine/internal/config"
	"github.com/arthaplan/engine/internal/domain"
)

// maxBodyBytes bounds the accepted request body; snapshots are small.
const maxBodyBytes = 1 << 20

// Server exposes the analysis engine over HTTP. Each request owns its own
// snapshot and result, so no locking is required.
type Server struct {
	engine *calculation.Engine
	loader *config.SnapshotLoader
	logger *logrus.Logger
	now    func() time.Time
}

// NewServer wires the engine behind the HTTP routes. The clock is
// injectable for tests; nil uses wall time.
func NewServer(engine *calculation.Engine, logger *logrus.Logger, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{
		engine: engine,
		loader: config.NewSnapshotLoader(),
		logger: logger,
		now:    now,
	}
}

// Router builds the mux router with all routes registered.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/v1/analyze", s.handleAnalyze).Methods("POST")
	r.HandleFunc("/api/v1/example", s.handleExample).Methods("GET")
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// analyzeResponse wraps a successful analysis.
type analyzeResponse struct {
	AsOf   string                 `json:"as_of"`
	Result *domain.AnalysisResult `json:"result"`
}

// errorResponse is the single structured error shape. Every validation
// problem found is listed; nothing partial is ever returned.
type errorResponse struct {
	Error      string                   `json:"error"`
	Violations []domain.ValidationError `json:"violations,omitempty"`
	References []referenceDetail        `json:"references,omitempty"`
}

type referenceDetail struct {
	GoalID     string `json:"goal_id"`
	PersonName string `json:"person_name"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return
	}

	snap, err := s.loader.LoadFromBytes(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	asOf := s.now()
	if q := r.URL.Query().Get("as_of"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "as_of must be YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	result, err := s.engine.Analyze(r.Context(), snap, asOf)
	if err != nil {
		s.writeAnalyzeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		AsOf:   asOf.UTC().Format("2006-01-02"),
		Result: result,
	})
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, config.ExampleSnapshot())
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, err error) {
	var verrs *domain.ValidationErrors
	if errors.As(err, &verrs) {
		resp := errorResponse{
			Error:      "snapshot rejected",
			Violations: verrs.Violations,
		}
		for _, ref := range verrs.References {
			resp.References = append(resp.References, referenceDetail{
				GoalID:     ref.GoalID,
				PersonName: ref.PersonName,
			})
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	// Consistency and arithmetic-guard failures are engine defects, never
	// surfaced with detail.
	s.logger.WithError(err).Error("analysis failed")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal analysis failure"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ListenAndServe runs the HTTP server with sane timeouts.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.loggingMiddleware(s.Router()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	s.logger.WithField("addr", addr).Info("listening")
	return srv.ListenAndServe()
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
