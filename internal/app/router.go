package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/clubdesk/clubdesk/internal/athletes"
	"github.com/clubdesk/clubdesk/internal/auth"
	"github.com/clubdesk/clubdesk/internal/authz"
	"github.com/clubdesk/clubdesk/internal/categories"
	"github.com/clubdesk/clubdesk/internal/dashboard"
	"github.com/clubdesk/clubdesk/internal/donations"
	"github.com/clubdesk/clubdesk/internal/donors"
	"github.com/clubdesk/clubdesk/internal/employees"
	"github.com/clubdesk/clubdesk/internal/equipment"
	"github.com/clubdesk/clubdesk/internal/events"
	"github.com/clubdesk/clubdesk/internal/observability"
	"github.com/clubdesk/clubdesk/internal/providers"
	"github.com/clubdesk/clubdesk/internal/purchases"
	"github.com/clubdesk/clubdesk/internal/roles"
	"github.com/clubdesk/clubdesk/internal/shared"
	"github.com/clubdesk/clubdesk/internal/users"
	"github.com/clubdesk/clubdesk/internal/workforce"
	"github.com/clubdesk/clubdesk/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler        *auth.Handler
	PermissionsHandler *authz.Handler
	DashboardHandler   *dashboard.Handler
	RolesHandler       *roles.Handler
	UsersHandler       *users.Handler
	CategoriesHandler  *categories.Handler
	EquipmentHandler   *equipment.Handler
	AthletesHandler    *athletes.Handler
	DonorsHandler      *donors.Handler
	DonationsHandler   *donations.Handler
	EventsHandler      *events.Handler
	EmployeesHandler   *employees.Handler
	WorkforceHandler   *workforce.Handler
	ProvidersHandler   *providers.Handler
	PurchasesHandler   *purchases.Handler
	JobHandler         *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Clubdesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)
	if params.PermissionsHandler != nil {
		r.Route("/permissions", params.PermissionsHandler.MountRoutes)
	}
	if params.DashboardHandler != nil {
		r.Route("/dashboard", params.DashboardHandler.MountRoutes)
	}
	if params.RolesHandler != nil {
		r.Route("/roles", params.RolesHandler.MountRoutes)
	}
	if params.UsersHandler != nil {
		r.Route("/users", params.UsersHandler.MountRoutes)
	}
	if params.CategoriesHandler != nil {
		r.Route("/categories", params.CategoriesHandler.MountRoutes)
	}
	if params.EquipmentHandler != nil {
		r.Route("/equipment", params.EquipmentHandler.MountRoutes)
	}
	if params.AthletesHandler != nil {
		r.Route("/athletes", params.AthletesHandler.MountRoutes)
	}
	if params.DonorsHandler != nil {
		r.Route("/donors", params.DonorsHandler.MountRoutes)
	}
	if params.DonationsHandler != nil {
		r.Route("/donations", params.DonationsHandler.MountRoutes)
	}
	if params.EventsHandler != nil {
		r.Route("/events", params.EventsHandler.MountRoutes)
		r.Route("/appointments", params.EventsHandler.MountAppointmentRoutes)
	}
	if params.EmployeesHandler != nil {
		r.Route("/employees", params.EmployeesHandler.MountRoutes)
	}
	if params.WorkforceHandler != nil {
		r.Route("/temporary-workers", params.WorkforceHandler.MountWorkerRoutes)
		r.Route("/temporary-teams", params.WorkforceHandler.MountTeamRoutes)
	}
	if params.ProvidersHandler != nil {
		r.Route("/providers", params.ProvidersHandler.MountRoutes)
	}
	if params.PurchasesHandler != nil {
		r.Route("/purchases", params.PurchasesHandler.MountRoutes)
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
