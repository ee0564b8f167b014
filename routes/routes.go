package routes

import (
	"net/http"
	"strings"

	"github.com/arrivaldo/code-challenge-backend/handlers"
)

// Middleware wraps a handler at the routing boundary. Admin routes take
// an access-control middleware here so a credential check can be attached
// without touching the account service.
type Middleware func(http.Handler) http.Handler

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	mux *http.ServeMux,
	userHandler *handlers.UserHandler,
	adminHandler *handlers.AdminHandler,
	uploadHandler *handlers.UploadHandler,
	adminGate Middleware,
) {
	if adminGate == nil {
		adminGate = func(next http.Handler) http.Handler { return next }
	}

	// Upload route
	mux.Handle("/api/upload", withCORS(http.HandlerFunc(handlers.RecoverWrapper(uploadHandler.Upload))))

	// Auth routes
	mux.Handle("/api/auth/register", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Register))))
	mux.Handle("/api/auth/login", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Login))))
	mux.Handle("/api/auth/profile", withCORS(http.HandlerFunc(handlers.RecoverWrapper(userHandler.Profile))))

	// Admin routes
	mux.Handle("/api/admin/users", withCORS(adminGate(http.HandlerFunc(handlers.RecoverWrapper(adminHandler.ListUsers)))))

	// Admin routes with an id: {id}/status and {id}
	mux.Handle("/api/admin/users/", withCORS(adminGate(http.HandlerFunc(handlers.RecoverWrapper(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/admin/users/")
		switch {
		case r.Method == http.MethodPut && strings.HasSuffix(rest, "/status"):
			id := strings.TrimSuffix(rest, "/status")
			if id == "" || strings.Contains(id, "/") {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			adminHandler.UpdateStatus(w, r, id)
		case r.Method == http.MethodDelete && rest != "" && !strings.Contains(rest, "/"):
			adminHandler.Delete(w, r, rest)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))))
}
