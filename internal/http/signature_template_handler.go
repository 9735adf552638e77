package http

import (
	"net/http"

	"github.com/relaydesk/relaydesk/internal/domain"
	"github.com/relaydesk/relaydesk/internal/http/middleware"
	"github.com/relaydesk/relaydesk/pkg/logger"
	"github.com/relaydesk/relaydesk/pkg/ratelimiter"
)

// Rate limit namespaces
const (
	RateLimitRender  = "render"
	RateLimitBuilder = "builder"
)

type SignatureTemplateHandler struct {
	service domain.SignatureTemplateService
	logger  logger.Logger
	auth    *middleware.AuthConfig
	limiter *ratelimiter.Limiter
}

func NewSignatureTemplateHandler(service domain.SignatureTemplateService, jwtSecret []byte, logger logger.Logger) *SignatureTemplateHandler {
	return &SignatureTemplateHandler{
		service: service,
		logger:  logger,
		auth:    middleware.NewAuthMiddleware(jwtSecret),
	}
}

// SetRateLimiter throttles the rendering endpoints under RateLimitRender.
// Call it before RegisterRoutes.
func (h *SignatureTemplateHandler) SetRateLimiter(limiter *ratelimiter.Limiter) {
	h.limiter = limiter
}

func (h *SignatureTemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()
	limited := func(next http.HandlerFunc) http.Handler {
		if h.limiter == nil {
			return requireAuth(next)
		}
		return requireAuth(middleware.RateLimit(h.limiter, RateLimitRender)(next))
	}

	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/signatures.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/signatures.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/signatures.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/signatures.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/signatures.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
	mux.Handle("/api/signatures.render", limited(h.handleRender))
	mux.Handle("/api/signatures.preview", limited(h.handlePreview))
	mux.Handle("/api/signatures.mjml", limited(h.handleMJML))
}

func (h *SignatureTemplateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	var req domain.ListSignatureTemplatesRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	templates, err := h.service.ListTemplates(r.Context(), req.Limit, req.Offset)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list signature templates")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *SignatureTemplateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	var req domain.GetSignatureTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.service.GetTemplate(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get signature template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *SignatureTemplateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.CreateSignatureTemplateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.service.CreateTemplate(r.Context(), req.Name, req.Tree)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to create signature template")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"template": template,
	})
}

func (h *SignatureTemplateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.UpdateSignatureTemplateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.service.UpdateTemplate(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update signature template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *SignatureTemplateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.DeleteSignatureTemplateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), req.ID); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete signature template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// handleRender renders an unsaved tree, for the builder's live preview and
// for exports.
func (h *SignatureTemplateHandler) handleRender(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.RenderSignatureRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := h.service.RenderTree(r.Context(), req.Tree, req.Minify)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to render signature")
		return
	}

	writeJSON(w, http.StatusOK, domain.RenderSignatureResponse{HTML: html})
}

func (h *SignatureTemplateHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.PreviewSignatureRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := h.service.PreviewTemplate(r.Context(), req.ID, req.Data)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to preview signature template")
		return
	}

	writeJSON(w, http.StatusOK, domain.RenderSignatureResponse{HTML: html})
}

func (h *SignatureTemplateHandler) handleMJML(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	var req domain.GetSignatureTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.CompileTemplateMJML(r.Context(), req.ID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to compile signature template")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
	})
}
