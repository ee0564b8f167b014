package handlers

import (
	"log"
	"net/http"
	"runtime"
)

// RecoverWrapper wraps an http.HandlerFunc with panic recovery so one bad
// request cannot take the server down.
func RecoverWrapper(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)
				writeJSON(w, http.StatusInternalServerError, ApiResponse{
					Success: false,
					Message: "internal server error",
					Error:   http.StatusText(http.StatusInternalServerError),
				})
			}
		}()

		handler(w, r)
	}
}
