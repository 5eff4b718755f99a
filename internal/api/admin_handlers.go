package api

import (
	"log"
	"net/http"

	"availability/internal/service"
)

type AdminHandler struct {
	Service *service.AdminService
}

func NewAdminHandler(svc *service.AdminService) *AdminHandler {
	return &AdminHandler{Service: svc}
}

// ListRequests serves GET /admin/requests[?pending=true].
func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	pendingOnly := r.URL.Query().Get("pending") == "true"
	requests, err := h.Service.ListRequests(r.Context(), pendingOnly)
	if err != nil {
		log.Printf("admin: list requests: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not list requests"})
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// ListPending serves GET /admin/pending.
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.ListRequests(r.Context(), true)
	if err != nil {
		log.Printf("admin: list pending: %v", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "could not list requests"})
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
