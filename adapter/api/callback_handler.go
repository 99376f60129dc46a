package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/felixgeelhaar/tribunal/internal/callback"
	"github.com/felixgeelhaar/tribunal/internal/caserecord"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

const (
	// HeaderCallbackSource marks automated flows when set to "automated".
	HeaderCallbackSource = "X-Callback-Source"

	maxBodyBytes = 10 << 20
)

// Dispatcher runs a callback through its rule handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, cb callback.Callback) (callback.Response, error)
}

// CallbackRequest is the body the platform posts for every phase.
type CallbackRequest struct {
	EventID           string                  `json:"event_id"`
	CaseDetails       caserecord.CaseDetails  `json:"case_details"`
	CaseDetailsBefore *caserecord.CaseDetails `json:"case_details_before,omitempty"`
	IgnoreWarning     bool                    `json:"ignore_warning"`
}

// CallbackHandler serves POST /callbacks/{phase}.
type CallbackHandler struct {
	dispatcher Dispatcher
	logger     *slog.Logger
}

func NewCallbackHandler(dispatcher Dispatcher, logger *slog.Logger) *CallbackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CallbackHandler{dispatcher: dispatcher, logger: logger}
}

// Handle decodes the callback and returns the dispatcher's response. Rule
// errors travel in the 200 body; unroutable callbacks are 400 and
// infrastructure failures 500 so the platform retries.
func (h *CallbackHandler) Handle(w http.ResponseWriter, r *http.Request) {
	phase, err := callback.ParsePhase(chi.URLParam(r, "phase"))
	if err != nil {
		writeError(w, ErrNotFound.WithMessage(err.Error()))
		return
	}

	var req CallbackRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, ErrBadRequest.WithMessage("invalid callback body: "+err.Error()))
		return
	}
	if req.EventID == "" {
		writeError(w, ErrBadRequest.WithMessage("event_id is required"))
		return
	}

	cb := callback.Callback{
		Phase:             phase,
		Event:             callback.EventType(req.EventID),
		CaseDetails:       req.CaseDetails,
		CaseDetailsBefore: req.CaseDetailsBefore,
		PageID:            r.URL.Query().Get("pageId"),
		IgnoreWarnings:    req.IgnoreWarning,
		Automated:         strings.EqualFold(r.Header.Get(HeaderCallbackSource), "automated"),
	}

	resp, err := h.dispatcher.Dispatch(r.Context(), cb)
	switch {
	case errors.Is(err, callback.ErrNoHandler), errors.Is(err, callback.ErrAmbiguousHandler):
		writeError(w, ErrBadRequest.WithMessage(err.Error()))
		return
	case err != nil:
		h.logger.ErrorContext(r.Context(), "callback failed",
			observability.PhaseKey, phase,
			"event", req.EventID,
			"case_id", req.CaseDetails.ID,
			observability.ErrorKey, err,
		)
		writeError(w, ErrInternalServer)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
