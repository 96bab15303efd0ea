package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/redmonkez12/go-todo-client/internal/httputil"
	"github.com/redmonkez12/go-todo-client/internal/logging"
)

// Router builds the HTTP routes
func (a *API) Router() *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first, for browser frontends pointed at the mock
	if len(a.trustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   a.trustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(a.logger))
	r.Use(middleware.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, "Not Found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.Register)
		r.Post("/login", a.Login)
	})

	r.Route("/users/tasks", func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Get("/", a.ListTasks)
		r.Post("/", a.CreateTask)
		r.Get("/{taskID}", a.GetTask)
		r.Put("/{taskID}", a.UpdateTask)
		r.Delete("/{taskID}", a.DeleteTask)
		r.Patch("/{taskID}/toggle", a.ToggleTask)
	})

	return r
}
