package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/pawhub/pet-adoption-platform/internal/billing"
	"github.com/pawhub/pet-adoption-platform/internal/clinic"
	redisclient "github.com/pawhub/pet-adoption-platform/internal/redis"
	"github.com/pawhub/pet-adoption-platform/internal/shelter"
	"github.com/pawhub/pet-adoption-platform/internal/user"
)

type RouterConfig struct {
	Shelter  *shelter.Service
	Clinic   *clinic.Service
	Users    *user.Service
	Billing  *billing.Service
	Sessions redisclient.SessionStore
	PgPool   *pgxpool.Pool
	Redis    *redis.Client
	Env      string
	Version  string
}

// NewRouter wires every resource. Reads are public, writes require a session.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Apply middleware
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)

	// Health endpoints
	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	// Auth
	r.Post("/auth/register", registerHandler(cfg.Users))
	r.Post("/auth/login", loginHandler(cfg.Users, cfg.Sessions))
	r.Post("/auth/logout", logoutHandler(cfg.Sessions))

	// Public reads
	r.Get("/users", listUsersHandler(cfg.Users))
	r.Get("/users/{id}", getUserHandler(cfg.Users))

	r.Get("/categories", listCategoriesHandler(cfg.Shelter))
	r.Get("/categories/{id}", getCategoryHandler(cfg.Shelter))

	r.Get("/pets", listPetsHandler(cfg.Shelter))
	r.Get("/pets/{id}", getPetHandler(cfg.Shelter))

	r.Get("/adoptions", listAdoptionsHandler(cfg.Shelter))
	r.Get("/adoptions/{id}", getAdoptionHandler(cfg.Shelter))

	r.Get("/clinics", listClinicsHandler(cfg.Clinic))
	r.Get("/clinics/{id}", getClinicHandler(cfg.Clinic))

	r.Get("/services", listServicesHandler(cfg.Clinic))
	r.Get("/services/{id}", getServiceHandler(cfg.Clinic))

	r.Get("/appointments", listAppointmentsHandler(cfg.Clinic))
	r.Get("/appointments/{id}", getAppointmentHandler(cfg.Clinic))

	r.Get("/plans", listPlansHandler(cfg.Billing))
	r.Get("/orders", listOrdersHandler(cfg.Billing))

	// Writes, session required
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Sessions))

		r.Post("/users", createUserHandler(cfg.Users))
		r.Put("/users/{id}", updateUserHandler(cfg.Users))
		r.Delete("/users/{id}", deleteUserHandler(cfg.Users))

		r.Post("/categories", createCategoryHandler(cfg.Shelter))
		r.Put("/categories/{id}", updateCategoryHandler(cfg.Shelter))
		r.Delete("/categories/{id}", deleteCategoryHandler(cfg.Shelter))

		r.Post("/pets", createPetHandler(cfg.Shelter))
		r.Put("/pets/{id}", updatePetHandler(cfg.Shelter))
		r.Delete("/pets/{id}", deletePetHandler(cfg.Shelter))

		r.Post("/adoptions", createAdoptionHandler(cfg.Shelter))
		r.Put("/adoptions/{id}", updateAdoptionHandler(cfg.Shelter))
		r.Delete("/adoptions/{id}", deleteAdoptionHandler(cfg.Shelter))

		r.Post("/clinics", createClinicHandler(cfg.Clinic))
		r.Put("/clinics/{id}", updateClinicHandler(cfg.Clinic))
		r.Delete("/clinics/{id}", deleteClinicHandler(cfg.Clinic))

		r.Post("/services", createServiceHandler(cfg.Clinic))
		r.Put("/services/{id}", updateServiceHandler(cfg.Clinic))
		r.Delete("/services/{id}", deleteServiceHandler(cfg.Clinic))

		r.Post("/appointments", createAppointmentHandler(cfg.Clinic))
		r.Put("/appointments/{id}", updateAppointmentHandler(cfg.Clinic))
		r.Delete("/appointments/{id}", deleteAppointmentHandler(cfg.Clinic))

		r.Post("/orders", createOrderHandler(cfg.Billing))
		r.Put("/orders/{id}", updateOrderHandler(cfg.Billing))
	})

	return r
}
