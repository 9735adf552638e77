package http

import (
	"net/http"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/internal/http/middleware"
	"github.com/relaydesk/relaydesk/pkg/logger"
	"github.com/relaydesk/relaydesk/pkg/ratelimiter"
	"github.com/relaydesk/relaydesk/pkg/signature"
)

// BuilderHandler exposes editing sessions. Every mutating endpoint answers
// with the full builder state, HTML preview included.
type BuilderHandler struct {
	service domain.BuilderService
	logger  logger.Logger
	auth    *middleware.AuthConfig
	limiter *ratelimiter.Limiter
}

func NewBuilderHandler(service domain.BuilderService, jwtSecret []byte, logger logger.Logger) *BuilderHandler {
	return &BuilderHandler{
		service: service,
		logger:  logger,
		auth:    middleware.NewAuthMiddleware(jwtSecret),
	}
}

// SetRateLimiter throttles the session endpoints under RateLimitBuilder.
// Call it before RegisterRoutes.
func (h *BuilderHandler) SetRateLimiter(limiter *ratelimiter.Limiter) {
	h.limiter = limiter
}

func (h *BuilderHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()
	limited := func(next http.HandlerFunc) http.Handler {
		if h.limiter == nil {
			return requireAuth(next)
		}
		return requireAuth(middleware.RateLimit(h.limiter, RateLimitBuilder)(next))
	}

	mux.Handle("/api/builder.palette", requireAuth(http.HandlerFunc(h.handlePalette)))
	mux.Handle("/api/builder.open", limited(h.handleOpen))
	mux.Handle("/api/builder.state", limited(h.handleState))
	mux.Handle("/api/builder.insert", limited(h.handleInsert))
	mux.Handle("/api/builder.update", limited(h.handleUpdate))
	mux.Handle("/api/builder.delete", limited(h.handleDelete))
	mux.Handle("/api/builder.resize", limited(h.handleResize))
	mux.Handle("/api/builder.select", limited(h.handleSelect))
	mux.Handle("/api/builder.clear", limited(h.handleClear))
	mux.Handle("/api/builder.save", limited(h.handleSave))
}

func (h *BuilderHandler) handlePalette(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"palette": signature.Palette(),
	})
}

func (h *BuilderHandler) handleOpen(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.BuilderOpenRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.Open(r.Context(), req.TemplateID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to open builder session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"state": state})
}

func (h *BuilderHandler) handleState(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	req := domain.BuilderSessionRequest{SessionID: r.URL.Query().Get("session_id")}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := h.service.State(r.Context(), req.SessionID)
	h.writeState(w, state, err, "Failed to load builder session")
}

func (h *BuilderHandler) handleInsert(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderInsertRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.Insert(r.Context(), &req)
	h.writeState(w, state, err, "Failed to insert block")
}

func (h *BuilderHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderUpdateRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.Update(r.Context(), &req)
	h.writeState(w, state, err, "Failed to update block")
}

func (h *BuilderHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderDeleteRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.Delete(r.Context(), &req)
	h.writeState(w, state, err, "Failed to delete block")
}

func (h *BuilderHandler) handleResize(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderResizeRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.Resize(r.Context(), &req)
	h.writeState(w, state, err, "Failed to resize layout")
}

func (h *BuilderHandler) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderSelectRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.Select(r.Context(), &req)
	h.writeState(w, state, err, "Failed to select block")
}

func (h *BuilderHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderSessionRequest
	if !h.decode(w, r, &req) {
		return
	}
	state, err := h.service.Clear(r.Context(), req.SessionID)
	h.writeState(w, state, err, "Failed to clear selection")
}

// handleSave leaves name validation to the service so that an untitled save
// is reported the same way whichever client sends it.
func (h *BuilderHandler) handleSave(w http.ResponseWriter, r *http.Request) {
	var req domain.BuilderSaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	template, err := h.service.Save(r.Context(), req.SessionID, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to save signature template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"template": template})
}

type validatable interface {
	Validate() error
}

// decode reads a POST body and validates it, answering the request itself
// when either step fails.
func (h *BuilderHandler) decode(w http.ResponseWriter, r *http.Request, req validatable) bool {
	if !requireMethod(w, r, http.MethodPost) {
		return false
	}
	if err := decodeJSONBody(w, r, req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *BuilderHandler) writeState(w http.ResponseWriter, state *domain.BuilderState, err error, message string) {
	if err != nil {
		writeServiceError(w, h.logger, err, message)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"state": state})
}
