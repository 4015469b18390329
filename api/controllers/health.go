package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/omega-store/omega-backend/api/responses"
	"github.com/omega-store/omega-backend/pkg/db"
	"github.com/omega-store/omega-backend/pkg/logger"
	"github.com/omega-store/omega-backend/pkg/redis"
)

const readinessTimeout = 2 * time.Second

// HealthLive reports process liveness only.
func HealthLive() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}

// HealthReady reports readiness after probing the datasource and Redis.
// A failing dependency yields 503 with per-check detail.
func HealthReady(database db.Pinger, cache redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		checks := map[string]string{"database": "ok", "redis": "ok"}
		healthy := true

		if database == nil {
			checks["database"] = "not configured"
			healthy = false
		} else if err := database.Ping(ctx); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "health.database_unreachable")
			checks["database"] = "unreachable"
			healthy = false
		}

		if cache == nil {
			checks["redis"] = "not configured"
			healthy = false
		} else if err := cache.Ping(ctx); err != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "health.redis_unreachable")
			checks["redis"] = "unreachable"
			healthy = false
		}

		status := http.StatusOK
		state := "ready"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": state,
			"checks": checks,
		})
	}
}
