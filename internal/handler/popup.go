package handler

import (
	"net/http"

	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/service"
)

// PopupHandler handles HTTP requests for popup sessions.
type PopupHandler struct {
	service *service.PopupService
}

// NewPopupHandler creates a new PopupHandler.
func NewPopupHandler(svc *service.PopupService) *PopupHandler {
	return &PopupHandler{service: svc}
}

// HandleOpen handles POST /api/v1/popup requests.
func (h *PopupHandler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Open(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleRegenerate handles POST /api/v1/popup/generate requests.
func (h *PopupHandler) HandleRegenerate(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PopupClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	resp, err := h.service.Regenerate(claims)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
