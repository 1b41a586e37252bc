package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/classmate-be/internal/api/handlers"
	"github.com/isdelr/classmate-be/internal/auth"
	"github.com/isdelr/classmate-be/internal/chat"
	"github.com/isdelr/classmate-be/internal/monitoring"
	"github.com/isdelr/classmate-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	itemService services.ItemServiceProvider,
	eventService services.EventServiceProvider,
	relay *chat.Relay,
	monitor *monitoring.HealthMonitor,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration; the default origin is permissive for development
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	itemHandler := handlers.NewItemHandler(itemService)
	chatHandler := handlers.NewChatHandler(relay)
	eventHandler := handlers.NewEventHandler(eventService)
	healthHandler := handlers.NewHealthHandler(monitor)

	r.Get("/", healthHandler.Get)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/chat", chatHandler.Send)

		// Everything below requires a valid session token
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware(userService))

			r.Get("/me", userHandler.GetMe)

			r.Post("/goals", itemHandler.SaveGoals)
			r.Get("/goals", itemHandler.GetGoals)
			r.Get("/performance", itemHandler.GetPerformance)

			r.Post("/notes", itemHandler.SaveNotes)
			r.Get("/notes", itemHandler.GetNotes)

			r.Post("/tasks", itemHandler.SaveTasks)
			r.Get("/tasks", itemHandler.GetTasks)

			r.Get("/events", eventHandler.GetRecent)
		})
	})

	return r
}
