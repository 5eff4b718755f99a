package api

import (
	"io"
	"net/http"

	"availability/internal/auth"
	"availability/internal/templates"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// Handlers are the route targets. Admin may be nil, which leaves the admin
// routes unregistered.
type Handlers struct {
	Availability *AvailabilityHandler
	Admin        *AdminHandler
	AdminAuth    *AdminAuthHandler
	AdminSecret  string
}

// NewRouter registers every route. The result adds request ids, CORS, panic
// recovery and access logging to logOut.
func NewRouter(h Handlers, logOut io.Writer) http.Handler {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/healthz", Health).Methods("GET")
	r.HandleFunc("/availability/{key}", h.Availability.Show).Methods("GET")
	r.HandleFunc("/availability/{key}", h.Availability.Submit).Methods("POST")
	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.FS(templates.Static())))).Methods("GET")

	// Admin endpoints (protected)
	if h.Admin != nil && h.AdminAuth != nil {
		r.HandleFunc("/admin/login", h.AdminAuth.Login).Methods("POST")
		admin := r.PathPrefix("/admin").Subrouter()
		admin.Use(auth.AdminAuthMiddleware(h.AdminSecret))
		admin.HandleFunc("/requests", h.Admin.ListRequests).Methods("GET")
		admin.HandleFunc("/pending", h.Admin.ListPending).Methods("GET")
	}

	var handler http.Handler = r
	handler = handlers.CORS(
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
	)(handler)
	handler = handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(handler)
	handler = handlers.CombinedLoggingHandler(logOut, handler)
	return RequestID(handler)
}
