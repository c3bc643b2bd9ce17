package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/okian/marketnames/internal/adapters/repository"
	"github.com/okian/marketnames/internal/domain/model"
	"github.com/okian/marketnames/internal/domain/types"
	"github.com/okian/marketnames/internal/domain/urn"
	"github.com/okian/marketnames/pkg/logger"
)

// NamesDependencies defines what the names handler reads from.
type NamesDependencies interface {
	NameRenderer
	NameReader
}

// NamesHandler handles name requests.
type NamesHandler struct {
	deps        NamesDependencies
	defaultLang language.Tag
	logger      logger.Logger
}

// NewNamesHandler creates a new names handler.
func NewNamesHandler(deps NamesDependencies, defaultLang language.Tag, l logger.Logger) *NamesHandler {
	return &NamesHandler{deps: deps, defaultLang: defaultLang, logger: l}
}

type nameQuery struct {
	event      model.SportEvent
	marketID   int
	specifiers model.Specifiers
	lang       language.Tag
}

func (h *NamesHandler) parseQuery(q url.Values) (nameQuery, error) {
	var out nameQuery

	eventID := strings.TrimSpace(q.Get("event_id"))
	if eventID == "" {
		return out, errors.New("missing event_id")
	}
	id, err := urn.Parse(eventID)
	if err != nil {
		return out, err
	}
	out.event = model.SportEvent{ID: id}

	out.marketID, err = strconv.Atoi(q.Get("market_id"))
	if err != nil || out.marketID < 1 {
		return out, errors.New("market_id must be a positive integer")
	}

	out.specifiers, err = model.ParseSpecifiers(q.Get("specifiers"))
	if err != nil {
		return out, err
	}

	out.lang = h.defaultLang
	if raw := strings.TrimSpace(q.Get("lang")); raw != "" {
		if out.lang, err = language.Parse(raw); err != nil {
			return out, errors.New("invalid lang")
		}
	}
	return out, nil
}

// HandleMarketName handles GET /names/market requests.
func (h *NamesHandler) HandleMarketName(w http.ResponseWriter, r *http.Request) {
	const op = "api.market_name"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	name, err := h.deps.MarketName(r.Context(), q.event, q.marketID, q.specifiers, q.lang)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NameResponse{Name: name})
}

// HandleOutcomeName handles GET /names/outcome requests.
func (h *NamesHandler) HandleOutcomeName(w http.ResponseWriter, r *http.Request) {
	const op = "api.outcome_name"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	q, err := h.parseQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	outcomeID := r.URL.Query().Get("outcome_id")
	if outcomeID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, errors.New("missing outcome_id")))
		return
	}
	name, err := h.deps.OutcomeName(r.Context(), q.event, q.marketID, outcomeID, q.specifiers, q.lang)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	writeJSON(w, http.StatusOK, types.NameResponse{Name: name})
}

// HandleEventNames handles GET /names/event/{event_id} requests.
func (h *NamesHandler) HandleEventNames(w http.ResponseWriter, r *http.Request) {
	const op = "api.event_names"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	eventID := r.PathValue("event_id")
	if _, err := urn.Parse(eventID); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", wrapKind(op, ErrBadRequest, err))
		return
	}
	names, err := h.deps.ByEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (h *NamesHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := renderStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "render failed", logger.String("op", op), logger.Error(err))
	}
	writeError(w, status, code, err)
}
