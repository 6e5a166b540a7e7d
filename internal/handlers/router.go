package handlers

import (
	"net/http"

	"dsny-backend/internal/dsny"
	"dsny-backend/internal/middleware"
	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Engine    *dsny.Engine
	Store     DispatchStore
	Users     UserStore
	JWTSecret string
	Logger    *log.Logger
}

// NewRouter mounts every DSNY endpoint under /api.
func NewRouter(cfg RouterConfig) http.Handler {
	engine := cfg.Engine
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		// Authentication routes (no auth required)
		r.Post("/auth/login", Login(cfg.Users, cfg.JWTSecret, logger))

		r.Route("/dsny", func(r chi.Router) {
			// Reference queries
			r.Get("/buildings", ListBuildings(engine))
			r.Get("/buildings/{id}", GetBuilding(engine))
			r.Get("/buildings/{id}/collection", GetBuildingCollection(engine))
			r.Get("/set-out", GetSetOutBuildings(engine))
			r.Get("/retrieval", GetRetrievalBuildings(engine))
			r.Get("/plan", GetPlan(engine))
			r.Get("/reminders/set-out", GetSetOutReminders(engine))
			r.Get("/reminders/retrieval", GetRetrievalReminders(engine))

			// Worker routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret, logger))

				r.Get("/workers/{id}/tasks", GetWorkerTasks(engine))
				r.Get("/workers/{id}/week", GetWorkerWeek(engine))
				r.Get("/dispatched", GetDispatched(engine, cfg.Store, logger))
			})

			// Admin routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWTSecret, logger))
				r.Use(middleware.RequireRole(models.RoleAdmin))

				r.Get("/compliance", GetCompliance(engine))
				r.Get("/issues", GetIssues(engine))
				r.Get("/tasks/today", GetTodaysTasks(engine))
				r.Post("/dispatch", Dispatch(engine, cfg.Store, logger))
				r.Get("/dispatch/runs", ListDispatchRuns(cfg.Store, logger))
				r.Get("/users", ListUsers(cfg.Users, logger))
				r.Post("/users", CreateUser(engine, cfg.Users, logger))
			})
		})
	})

	return r
}
