package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/PeterLuschny/FigurativePartitions/internal/calculator"
	"github.com/PeterLuschny/FigurativePartitions/internal/metrics"
	"github.com/PeterLuschny/FigurativePartitions/internal/puzzle"
	"github.com/PeterLuschny/FigurativePartitions/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const (
	defaultPreviewLength = 8
	defaultSequenceCount = 10
)

// Handler wires the session store into HTTP handlers.
type Handler struct {
	store   storage.Store
	metrics *metrics.Recorder
	logger  *zap.Logger

	clock         func() time.Time
	previewLength int
	defaultTarget int
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMetrics records every puzzle operation on the given recorder.
func WithMetrics(recorder *metrics.Recorder) HandlerOption {
	return func(h *Handler) {
		h.metrics = recorder
	}
}

// WithLogger sets the logger used for game events.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithPreviewLength sets how many sequence values the shape palette shows.
func WithPreviewLength(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 && n <= calculator.MaxSequenceLength {
			h.previewLength = n
		}
	}
}

// WithDefaultTarget sets the target used when a new session omits one.
func WithDefaultTarget(target int) HandlerOption {
	return func(h *Handler) {
		if target > 0 {
			h.defaultTarget = target
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Store, opts ...HandlerOption) *Handler {
	h := &Handler{
		store:  store,
		logger: zap.NewNop(),
		clock: func() time.Time {
			return time.Now().UTC()
		},
		previewLength: defaultPreviewLength,
		defaultTarget: puzzle.DefaultTarget,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
		Sessions:  h.store.Len(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListShapes(w http.ResponseWriter, r *http.Request) {
	_ = r
	kinds := calculator.Kinds()
	shapes := make([]shapeResponse, 0, len(kinds))
	for _, kind := range kinds {
		preview, err := calculator.Sequence(kind, h.previewLength)
		if err != nil {
			writeInternalError(w, err)
			return
		}
		shapes = append(shapes, newShapeResponse(kind, preview))
	}
	writeJSON(w, http.StatusOK, shapesResponse{Shapes: shapes})
}

func (h *Handler) handleShapeValues(w http.ResponseWriter, r *http.Request) {
	kind, err := calculator.ParseKind(r.PathValue("kind"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid shape", err.Error())
		return
	}

	count := defaultSequenceCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid count", "count must be an integer")
			return
		}
	}

	values, err := calculator.Sequence(kind, count)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid count", err.Error())
		return
	}

	resp := sequenceResponse{
		shapeResponse: newShapeResponse(kind, nil),
		Values:        values,
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	// An empty body starts a round with the default target.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	target := h.defaultTarget
	if req.Target != nil {
		target = *req.Target
	}

	session, err := h.store.Create(target)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.metrics.SetSessions(h.store.Len())
	h.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.Int("target", target),
		zap.String("request_id", requestIDFromContext(r.Context())),
	)

	var snap puzzle.Snapshot
	if err := h.store.View(session.ID, func(c *puzzle.Collection) {
		snap = c.Snapshot()
	}); err != nil {
		h.writeStoreError(w, err)
		return
	}

	w.Header().Set("Location", "/api/sessions/"+session.ID)
	writeJSON(w, http.StatusCreated, sessionResponse{Session: session, Snapshot: snap})
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}

	var snap puzzle.Snapshot
	if err := h.store.View(session.ID, func(c *puzzle.Collection) {
		snap = c.Snapshot()
	}); err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: session, Snapshot: snap})
}

func (h *Handler) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.PathValue("id")); err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.metrics.SetSessions(h.store.Len())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleResetTarget(w http.ResponseWriter, r *http.Request) {
	var req targetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	// Invalid targets never reach the puzzle.
	if req.Target == nil || *req.Target <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid target", storage.ErrInvalidTarget.Error())
		return
	}

	h.mutate(w, r, "reset", func(c *puzzle.Collection) puzzle.Outcome {
		return c.Reset(*req.Target)
	})
}

func (h *Handler) handleAddFigure(w http.ResponseWriter, r *http.Request) {
	var req addFigureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Kind == nil {
		writeError(w, http.StatusBadRequest, "Invalid shape", "kind is required")
		return
	}

	h.mutate(w, r, "add", func(c *puzzle.Collection) puzzle.Outcome {
		_, outcome := c.Add(*req.Kind)
		return outcome
	})
}

func (h *Handler) handleIncrement(w http.ResponseWriter, r *http.Request) {
	figureID, ok := parseFigureID(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "increment", func(c *puzzle.Collection) puzzle.Outcome {
		return c.Increment(figureID)
	})
}

func (h *Handler) handleDecrement(w http.ResponseWriter, r *http.Request) {
	figureID, ok := parseFigureID(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "decrement", func(c *puzzle.Collection) puzzle.Outcome {
		return c.Decrement(figureID)
	})
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	figureID, ok := parseFigureID(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, "remove", func(c *puzzle.Collection) puzzle.Outcome {
		return c.Remove(figureID)
	})
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	h.mutate(w, r, "select", func(c *puzzle.Collection) puzzle.Outcome {
		if req.FigureID == nil {
			c.ClearSelection()
			return puzzle.Applied
		}
		return c.Select(*req.FigureID)
	})
}

// mutate applies op to the session and reports the outcome. Rejected
// operations are not HTTP errors: the puzzle simply stays as it was.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, name string, op func(*puzzle.Collection) puzzle.Outcome) {
	id := r.PathValue("id")

	var (
		outcome puzzle.Outcome
		wasWon  bool
		snap    puzzle.Snapshot
	)
	if err := h.store.Update(id, func(c *puzzle.Collection) {
		wasWon = c.Won()
		outcome = op(c)
		snap = c.Snapshot()
	}); err != nil {
		h.writeStoreError(w, err)
		return
	}

	h.metrics.Operation(name, outcome.String())
	if outcome.Applied() && snap.Won && !wasWon {
		h.metrics.Win()
		h.logger.Info("target reached",
			zap.String("session_id", id),
			zap.Int("target", snap.Target),
			zap.Int("clicks", snap.Operations),
			zap.String("request_id", requestIDFromContext(r.Context())),
		)
	}

	writeJSON(w, http.StatusOK, mutationResponse{
		Applied:  outcome.Applied(),
		Outcome:  outcome.String(),
		Snapshot: snap,
	})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "Session not found", err.Error())
	case errors.Is(err, storage.ErrInvalidTarget):
		writeError(w, http.StatusBadRequest, "Invalid target", err.Error())
	case errors.Is(err, storage.ErrSessionLimit):
		writeError(w, http.StatusServiceUnavailable, "Too many sessions", err.Error(), "Delete finished sessions or retry later")
	default:
		writeInternalError(w, err)
	}
}

func parseFigureID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("figureID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid figure id", "figure id must be an integer")
		return 0, false
	}
	return id, true
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type targetRequest struct {
	Target *int `json:"target"`
}

type addFigureRequest struct {
	Kind *calculator.Kind `json:"kind"`
}

type selectRequest struct {
	FigureID *int `json:"figureId"`
}

type shapeResponse struct {
	Kind       calculator.Kind `json:"kind"`
	Name       string          `json:"name"`
	Sides      int             `json:"sides"`
	OEIS       string          `json:"oeis,omitempty"`
	Adjustable bool            `json:"adjustable"`
	Preview    []int           `json:"preview,omitempty"`
}

func newShapeResponse(kind calculator.Kind, preview []int) shapeResponse {
	return shapeResponse{
		Kind:       kind,
		Name:       kind.String(),
		Sides:      kind.Sides(),
		OEIS:       kind.OEIS(),
		Adjustable: kind.Adjustable(),
		Preview:    preview,
	}
}

type shapesResponse struct {
	Shapes []shapeResponse `json:"shapes"`
}

type sequenceResponse struct {
	shapeResponse
	Values []int `json:"values"`
}

type sessionResponse struct {
	Session  storage.Session `json:"session"`
	Snapshot puzzle.Snapshot `json:"state"`
}

type mutationResponse struct {
	Applied  bool            `json:"applied"`
	Outcome  string          `json:"outcome"`
	Snapshot puzzle.Snapshot `json:"state"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Sessions  int       `json:"sessions"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
