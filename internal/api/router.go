package api

import (
	"database/sql"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gatherly/gatherly-be/internal/api/handlers"
	"github.com/gatherly/gatherly-be/internal/auth"
	"github.com/gatherly/gatherly-be/internal/config"
	"github.com/gatherly/gatherly-be/internal/models"
	"github.com/gatherly/gatherly-be/internal/services"
	"github.com/gatherly/gatherly-be/internal/websocket"
)

// Services bundles the service providers the router depends on.
type Services struct {
	Users         services.UserServiceProvider
	Events        services.EventServiceProvider
	RSVPs         services.RSVPServiceProvider
	Notifications services.NotificationServiceProvider
}

// NewRouter creates and configures a new Chi router.
func NewRouter(cfg *config.Config, db *sql.DB, tokens *auth.Tokens, hub *websocket.Hub, svcs Services) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Identity derivation: every request may carry a bearer token. Failure
	// to decode leaves the request unauthenticated; role guards reject it.
	r.Use(auth.Middleware(tokens))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svcs.Users, tokens)
	eventHandler := handlers.NewEventHandler(svcs.Events)
	rsvpHandler := handlers.NewRSVPHandler(svcs.RSVPs)
	notificationHandler := handlers.NewNotificationHandler(svcs.Notifications)
	adminHandler := handlers.NewAdminHandler(svcs.Users, svcs.Notifications)
	wsHandler := handlers.NewWebSocketHandler(hub, tokens, svcs.Notifications)
	healthHandler := handlers.NewHealthHandler(db, cfg.Environment)
	staticHandler := handlers.NewStaticHandler(cfg.FrontendDir)

	anyRole := auth.RequireRole(models.RoleAdmin, models.RoleOrganizer, models.RoleAttendee)
	organizerOrAdmin := auth.RequireRole(models.RoleAdmin, models.RoleOrganizer)
	adminOnly := auth.RequireRole(models.RoleAdmin)

	// Frontend and operational endpoints
	r.Get("/", staticHandler.Index)
	r.Get("/styles.css", staticHandler.Styles)
	r.Get("/app.js", staticHandler.App)
	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.Handler())

	// Authentication endpoints
	r.Post("/signup", authHandler.Signup)
	r.Post("/login", authHandler.Login)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// WebSocket connection endpoint for notification push
		r.Get("/ws", wsHandler.Serve)

		r.Route("/events", func(r chi.Router) {
			r.Get("/", eventHandler.List)
			r.With(organizerOrAdmin).Post("/", eventHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.Get)
				r.With(organizerOrAdmin).Put("/", eventHandler.Update)
				r.With(organizerOrAdmin).Delete("/", eventHandler.Delete)
				r.With(anyRole).Post("/rsvp", rsvpHandler.Respond)
				r.With(anyRole).Get("/rsvps", rsvpHandler.ListForEvent)
			})
		})

		r.Route("/me", func(r chi.Router) {
			r.Use(anyRole)
			r.Get("/", authHandler.GetMe)
			r.Get("/rsvps", rsvpHandler.ListMine)
			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListMine)
				r.Put("/read-all", notificationHandler.MarkAllRead)
				r.Put("/{id}/read", notificationHandler.MarkRead)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/stats", adminHandler.Stats)
			r.Get("/users", adminHandler.ListUsers)
			r.Put("/users/{id}/role", adminHandler.UpdateRole)
			r.Post("/create-user", adminHandler.CreateUser)
		})
	})

	return r
}
