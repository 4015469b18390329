package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omega-store/omega-backend/api/controllers"
	"github.com/omega-store/omega-backend/api/middleware"
	authsvc "github.com/omega-store/omega-backend/internal/auth"
	calendarsvc "github.com/omega-store/omega-backend/internal/calendar"
	chatsvc "github.com/omega-store/omega-backend/internal/chat"
	deliveriessvc "github.com/omega-store/omega-backend/internal/deliveries"
	employeessvc "github.com/omega-store/omega-backend/internal/employees"
	orderssvc "github.com/omega-store/omega-backend/internal/orders"
	paymentssvc "github.com/omega-store/omega-backend/internal/payments"
	salessvc "github.com/omega-store/omega-backend/internal/sales"
	taskssvc "github.com/omega-store/omega-backend/internal/tasks"
	timeclocksvc "github.com/omega-store/omega-backend/internal/timeclock"
	"github.com/omega-store/omega-backend/pkg/auth/session"
	"github.com/omega-store/omega-backend/pkg/authz"
	"github.com/omega-store/omega-backend/pkg/config"
	"github.com/omega-store/omega-backend/pkg/db"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/metrics"
	"github.com/omega-store/omega-backend/pkg/redis"
)

// Services bundles the domain services the router mounts.
type Services struct {
	Auth       authsvc.Service
	Sales      salessvc.Service
	Deliveries deliveriessvc.Service
	Orders     orderssvc.Service
	Payments   paymentssvc.Service
	Employees  employeessvc.Service
	Tasks      taskssvc.Service
	Timeclock  timeclocksvc.Service
	Chat       chatsvc.Service
	Calendar   calendarsvc.Service
}

// NewRouter assembles the HTTP surface: health probes, metrics, the public
// auth endpoints, and the authenticated API behind JWT + permission checks.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	database db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(database, redisClient, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Post("/auth/logout", controllers.Logout(svcs.Auth, logg))

		r.Route("/sales", func(r chi.Router) {
			r.With(middleware.RequirePermission(authz.PermSalesCreate, logg)).Post("/", controllers.SaleCreate(svcs.Sales, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermSalesRead, logg))
				r.Get("/", controllers.SaleList(svcs.Sales, logg))
				r.Get("/folio", controllers.SaleGetByFolio(svcs.Sales, logg))
				r.Get("/{id}", controllers.SaleGet(svcs.Sales, logg))
			})
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermDeliveriesRead, logg))
				r.Get("/", controllers.DeliveryList(svcs.Deliveries, logg))
				r.Get("/{id}", controllers.DeliveryGet(svcs.Deliveries, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermDeliveriesWrite, logg))
				r.Patch("/{id}/payload", controllers.DeliveryUpdatePayload(svcs.Deliveries, logg))
				r.Post("/{id}/deliver", controllers.DeliveryMarkDelivered(svcs.Deliveries, logg))
				r.Delete("/{id}", controllers.DeliveryDelete(svcs.Deliveries, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermOrdersRead, logg))
				r.Get("/", controllers.OrderList(svcs.Orders, logg))
				r.Get("/{id}", controllers.OrderGet(svcs.Orders, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermOrdersWrite, logg))
				r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
				r.Patch("/{id}/status", controllers.OrderUpdateStatus(svcs.Orders, logg))
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.With(middleware.RequirePermission(authz.PermPaymentsCreate, logg)).Post("/", controllers.PaymentCreate(svcs.Payments, logg))
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermPaymentsRead, logg))
				r.Get("/", controllers.PaymentList(svcs.Payments, logg))
				r.Get("/{id}", controllers.PaymentGet(svcs.Payments, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermPaymentsReview, logg))
				r.Post("/{id}/review", controllers.PaymentReview(svcs.Payments, logg))
				r.Delete("/{id}", controllers.PaymentDelete(svcs.Payments, logg))
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Use(middleware.RequirePermission(authz.PermEmployeesManage, logg))
			r.Post("/", controllers.EmployeeCreate(svcs.Employees, logg))
			r.Get("/", controllers.EmployeeList(svcs.Employees, logg))
			r.Get("/{id}", controllers.EmployeeGet(svcs.Employees, logg))
			r.Patch("/{id}", controllers.EmployeeUpdate(svcs.Employees, logg))
			r.Post("/{id}/deactivate", controllers.EmployeeDeactivate(svcs.Employees, logg))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermTasksRead, logg))
				r.Get("/", controllers.TaskList(svcs.Tasks, logg))
				r.Get("/{id}", controllers.TaskGet(svcs.Tasks, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(authz.PermTasksManage, logg))
				r.Post("/", controllers.TaskCreate(svcs.Tasks, logg))
				r.Patch("/{id}", controllers.TaskUpdate(svcs.Tasks, logg))
				r.Delete("/{id}", controllers.TaskDelete(svcs.Tasks, logg))
			})
		})

		r.Route("/timeclock", func(r chi.Router) {
			r.Use(middleware.RequirePermission(authz.PermTimeClockUse, logg))
			r.Post("/clock-in", controllers.ClockIn(svcs.Timeclock, logg))
			r.Post("/clock-out", controllers.ClockOut(svcs.Timeclock, logg))
			r.Get("/status", controllers.ClockStatus(svcs.Timeclock, logg))
			r.Get("/entries", controllers.TimeEntryList(svcs.Timeclock, logg))
		})

		r.Route("/chat/messages", func(r chi.Router) {
			r.Use(middleware.RequirePermission(authz.PermChatUse, logg))
			r.Post("/", controllers.ChatPost(svcs.Chat, logg))
			r.Get("/", controllers.ChatList(svcs.Chat, logg))
		})

		r.Route("/calendar/events", func(r chi.Router) {
			r.Use(middleware.RequirePermission(authz.PermCalendarUse, logg))
			r.Post("/", controllers.EventCreate(svcs.Calendar, logg))
			r.Get("/", controllers.EventList(svcs.Calendar, logg))
			r.Get("/{id}", controllers.EventGet(svcs.Calendar, logg))
			r.Patch("/{id}", controllers.EventUpdate(svcs.Calendar, logg))
			r.Delete("/{id}", controllers.EventDelete(svcs.Calendar, logg))
		})
	})

	return r
}
