package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"

	apperrors "availability/internal/errors"
	"availability/internal/service"
	"availability/internal/templates"
	"github.com/gorilla/mux"
)

const jsURL = "/static/availability.js"

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

type pageData struct {
	*service.Page
	JSURL string
}

// Show serves GET /availability/{key}.
func (h *AvailabilityHandler) Show(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	page, err := h.Service.Load(r.Context(), key)
	if err != nil {
		respondWithError(w, err)
		return
	}
	render(w, http.StatusOK, "index.html", pageData{Page: page, JSURL: jsURL})
}

// Submit serves POST /availability/{key}. Rejected submissions are rendered
// with the posted state and a 422 status.
func (h *AvailabilityHandler) Submit(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	if err := r.ParseForm(); err != nil {
		respondWithMessage(w, http.StatusBadRequest, "Invalid form submission")
		return
	}
	if _, ok := r.PostForm["calendarState"]; !ok {
		respondWithMessage(w, http.StatusBadRequest, "Missing calendar state")
		return
	}

	page, err := h.Service.Submit(r.Context(), key, r.PostForm.Get("calendarState"), r.PostForm.Get("response"))
	if err != nil {
		respondWithError(w, err)
		return
	}
	status := http.StatusOK
	if page.Invalid {
		status = http.StatusUnprocessableEntity
	}
	render(w, status, "index.html", pageData{Page: page, JSURL: jsURL})
}

func respondWithError(w http.ResponseWriter, err error) {
	status := apperrors.Status(err)
	msg := "Something went wrong. Please try again later."
	var ce *apperrors.ContractError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		msg = "Not found"
	case errors.Is(err, apperrors.ErrDuplicateKey):
		msg = "More than one record found for request key"
	case errors.As(err, &ce) && ce.Input:
		msg = "The submitted calendar could not be read."
	}
	if status >= 500 {
		log.Printf("availability: %v", err)
	}
	respondWithMessage(w, status, msg)
}

func respondWithMessage(w http.ResponseWriter, status int, msg string) {
	render(w, status, "base.html", struct{ Messages []service.Message }{
		Messages: []service.Message{{Category: service.CategoryError, Text: msg}},
	})
}

func render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.Pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("template %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Health serves GET /healthz.
func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
