package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/marketnames/internal/adapters/mq/queue"
	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/urn"
	"github.com/okian/marketnames/pkg/logger"
)

// observationRequest is the body of POST /observations.
type observationRequest struct {
	ObservationID string   `json:"observation_id"`
	EventID       string   `json:"event_id"`
	MarketID      int      `json:"market_id"`
	Specifiers    string   `json:"specifiers"`
	OutcomeIDs    []string `json:"outcome_ids"`
}

func (o observationRequest) toModel() (model.MarketObservation, error) {
	var out model.MarketObservation
	if strings.TrimSpace(o.EventID) == "" {
		return out, errors.New("missing event_id")
	}
	id, err := urn.Parse(o.EventID)
	if err != nil {
		return out, err
	}
	if o.MarketID < 1 {
		return out, errors.New("market_id must be a positive integer")
	}
	specs, err := model.ParseSpecifiers(o.Specifiers)
	if err != nil {
		return out, err
	}
	for _, oc := range o.OutcomeIDs {
		if strings.TrimSpace(oc) == "" {
			return out, errors.New("empty outcome id")
		}
	}
	out = model.MarketObservation{
		ObservationID: strings.TrimSpace(o.ObservationID),
		Event:         model.SportEvent{ID: id},
		MarketID:      o.MarketID,
		Specifiers:    specs,
		OutcomeIDs:    o.OutcomeIDs,
	}
	if out.ObservationID == "" {
		out.ObservationID = uuid.NewString()
	}
	return out, nil
}

type ackResponse struct {
	Status        string `json:"status"`
	ObservationID string `json:"observation_id"`
	Duplicate     bool   `json:"duplicate"`
}

// ObservationsHandler handles observation intake.
type ObservationsHandler struct {
	deps   ObservationIntake
	logger logger.Logger
}

// NewObservationsHandler creates a new observations handler.
func NewObservationsHandler(deps ObservationIntake, l logger.Logger) *ObservationsHandler {
	return &ObservationsHandler{deps: deps, logger: l}
}

// HandlePostObservation handles POST /observations requests.
func (h *ObservationsHandler) HandlePostObservation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_observation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req observationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	obs, err := req.toModel()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), obs.ObservationID) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", ObservationID: obs.ObservationID, Duplicate: true})
		return
	}

	if err := h.deps.Enqueue(r.Context(), obs); err != nil {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), obs.ObservationID)
		if errors.Is(err, queue.ErrClosed) {
			writeError(w, http.StatusServiceUnavailable, "unavailable", wrapKind(op, ErrUnavailable, err))
			return
		}
		h.logger.Warn(r.Context(), "observation rejected", logger.String("observationID", obs.ObservationID), logger.Error(err))
		writeError(w, http.StatusTooManyRequests, "backpressure", wrapKind(op, ErrBackpressure, err))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", ObservationID: obs.ObservationID})
}
