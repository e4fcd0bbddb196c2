package http

import (
	"log/slog"
	"net/http"

	"github.com/dopust-hr/leave-backend-go/internal/handler/http/middleware"
	"github.com/dopust-hr/leave-backend-go/internal/handler/http/response"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	FrontendURL string
	Logger      *slog.Logger
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	users middleware.UserLookup,
	authHandler AuthHandler,
	userHandler UserHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	r.Route("/api", func(r chi.Router) {

		// Public
		r.Post("/users", authHandler.Register)
		r.Post("/users/login", authHandler.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(users))

			r.Get("/users/loggedIn", userHandler.Me)
			r.Post("/users/request", leaveHandler.CreateRequest)
			r.Get("/leave-types", leaveHandler.ListLeaveTypes)

			r.Route("/requests", func(r chi.Router) {
				r.Get("/user-requests", leaveHandler.ListMyRequests)

				r.Delete("/leave", leaveHandler.DeleteLeave)
				r.Delete("/leave/", leaveHandler.DeleteLeave)
				r.Delete("/leave/{leaveId}", leaveHandler.DeleteLeave)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", leaveHandler.ListAllRequests)
					r.Put("/", leaveHandler.UpdateStatus)
					r.Get("/all-leaves", leaveHandler.ListAllLeaves)
					r.Get("/user-request-statuses", leaveHandler.Stats)
				})
			})

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/users", userHandler.List)
				r.Put("/users/{id}/type", userHandler.ToggleType)
			})
		})
	})

	return r
}
