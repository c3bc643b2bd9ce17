// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/domain/dedupe"
	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/nameerr"
	"github.com/okian/marketnames/internal/domain/types"
	"github.com/okian/marketnames/pkg/logger"
)

// NameRenderer renders names on demand.
type NameRenderer interface {
	MarketName(ctx context.Context, event model.SportEvent, marketID int, specifiers model.Specifiers, lang language.Tag) (string, error)
	OutcomeName(ctx context.Context, event model.SportEvent, marketID int, outcomeID string, specifiers model.Specifiers, lang language.Tag) (string, error)
}

// NameReader exposes names rendered ahead of time.
type NameReader interface {
	ByEvent(ctx context.Context, eventID string) ([]types.RenderedName, error)
}

// ObservationIntake accepts market observations for background rendering.
type ObservationIntake interface {
	dedupe.Deduper

	// Enqueue pushes an observation. Returns queue.ErrFull on backpressure.
	Enqueue(ctx context.Context, o model.MarketObservation) error
}

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	NameRenderer
	NameReader
	ObservationIntake
}

// Server wires HTTP routes for the naming API.
type Server struct {
	defaultLang language.Tag
	logger      logger.Logger

	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	namesHandler        *NamesHandler
	observationsHandler *ObservationsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		defaultLang: language.English,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.namesHandler = NewNamesHandler(deps, s.defaultLang, s.logger)
	s.observationsHandler = NewObservationsHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	route := func(pattern, endpoint string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, RequestIDMiddleware(MetricsMiddleware(h, endpoint)))
	}
	route("/healthz", "healthz", s.healthHandler.HandleHealth)
	route("/metrics", "metrics", s.healthHandler.HandleMetrics)
	route("/stats", "stats", s.statsHandler.HandleStats)
	route("/names/market", "names_market", s.namesHandler.HandleMarketName)
	route("/names/outcome", "names_outcome", s.namesHandler.HandleOutcomeName)
	route("/names/event/{event_id}", "names_event", s.namesHandler.HandleEventNames)
	route("/observations", "observations", s.observationsHandler.HandlePostObservation)
}

// Handler returns a mux with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.Register(mux)
	return mux
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// renderStatus maps a naming failure to its HTTP status and error code.
func renderStatus(err error) (int, string) {
	switch nameerr.KindOf(err) {
	case nameerr.KindSyntax:
		return http.StatusUnprocessableEntity, "syntax_error"
	case nameerr.KindResolution:
		return http.StatusUnprocessableEntity, "resolution_error"
	case nameerr.KindGeneration:
		return http.StatusNotFound, "generation_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
