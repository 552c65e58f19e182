package api

import (
	"log/slog"
	"net/http"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health                            — liveness + database check
//	GET /api/v1/lunar/today                — today's lunisolar description
//	GET /api/v1/lunar/date/{date}          — solar→lunar for YYYY-MM-DD
//	GET /api/v1/lunar/range?start=&end=    — solar→lunar per day, ≤90 days
//	GET /api/v1/solar/{year}/{month}/{day} — lunar→solar
//	GET /api/v1/terms/{year}               — 24 solar terms of a year
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	baseMiddleware := ChainMiddleware(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	mux.HandleFunc("GET /health", handlers.HealthCheck)
	mux.HandleFunc("GET /api/v1/lunar/today", handlers.GetTodayLunar)
	mux.HandleFunc("GET /api/v1/lunar/date/{date}", handlers.GetDateLunar)
	mux.HandleFunc("GET /api/v1/lunar/range", handlers.GetRangeLunar)
	mux.HandleFunc("GET /api/v1/solar/{year}/{month}/{day}", handlers.GetSolar)
	mux.HandleFunc("GET /api/v1/terms/{year}", handlers.GetYearTerms)

	return baseMiddleware(mux)
}
