package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/omega-store/omega-backend/api/routes"
	"github.com/omega-store/omega-backend/internal/auth"
	"github.com/omega-store/omega-backend/internal/calendar"
	"github.com/omega-store/omega-backend/internal/chat"
	"github.com/omega-store/omega-backend/internal/deliveries"
	"github.com/omega-store/omega-backend/internal/employees"
	"github.com/omega-store/omega-backend/internal/orders"
	"github.com/omega-store/omega-backend/internal/payments"
	"github.com/omega-store/omega-backend/internal/sales"
	"github.com/omega-store/omega-backend/internal/tasks"
	"github.com/omega-store/omega-backend/internal/timeclock"
	"github.com/omega-store/omega-backend/pkg/auth/session"
	"github.com/omega-store/omega-backend/pkg/config"
	"github.com/omega-store/omega-backend/pkg/db"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/metrics"
	"github.com/omega-store/omega-backend/pkg/migrate"
	"github.com/omega-store/omega-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	require(logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	require(logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	require(logg, "dev migrations", migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient))

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	require(logg, "redis", err)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	deliveryMetrics := metrics.NewDeliveryMetrics(registry)

	sessionManager := session.New(redisClient, cfg.JWT)

	conn := dbClient.DB()
	employeesRepo := employees.NewRepository(conn)
	salesRepo := sales.NewRepository(conn)
	deliveriesRepo := deliveries.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	paymentsRepo := payments.NewRepository(conn)
	tasksRepo := tasks.NewRepository(conn)
	timeclockRepo := timeclock.NewRepository(conn)
	chatRepo := chat.NewRepository(conn)
	calendarRepo := calendar.NewRepository(conn)

	authService, err := auth.NewService(employeesRepo, sessionManager, cfg.JWT, logg)
	require(logg, "auth service", err)

	deliveriesService, err := deliveries.NewService(deliveriesRepo)
	require(logg, "deliveries service", err)

	salesService, err := sales.NewService(salesRepo, deliveriesService, deliveryMetrics, logg)
	require(logg, "sales service", err)

	ordersService, err := orders.NewService(ordersRepo)
	require(logg, "orders service", err)

	paymentsService, err := payments.NewService(paymentsRepo, salesRepo, ordersRepo, dbClient, logg)
	require(logg, "payments service", err)

	employeesService, err := employees.NewService(employeesRepo, cfg.Password)
	require(logg, "employees service", err)

	tasksService, err := tasks.NewService(tasksRepo)
	require(logg, "tasks service", err)

	timeclockService, err := timeclock.NewService(timeclockRepo)
	require(logg, "timeclock service", err)

	chatService, err := chat.NewService(chatRepo)
	require(logg, "chat service", err)

	calendarService, err := calendar.NewService(calendarRepo)
	require(logg, "calendar service", err)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			registry,
			routes.Services{
				Auth:       authService,
				Sales:      salesService,
				Deliveries: deliveriesService,
				Orders:     ordersService,
				Payments:   paymentsService,
				Employees:  employeesService,
				Tasks:      tasksService,
				Timeclock:  timeclockService,
				Chat:       chatService,
				Calendar:   calendarService,
			},
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func require(logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to bootstrap "+resource, err)
	os.Exit(1)
}
