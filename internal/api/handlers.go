package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/liangcht/lunarcal-api/internal/calendar"
	"github.com/liangcht/lunarcal-api/internal/config"
	"github.com/liangcht/lunarcal-api/internal/database"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	conv   *calendar.Converter
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger

	// now supplies "today" for the default-date endpoints; injected so
	// tests can pin it.
	now func() time.Time
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(conv *calendar.Converter, db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		conv:   conv,
		db:     db,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// GetTodayLunar handles GET /api/v1/lunar/today
func (h *Handlers) GetTodayLunar(w http.ResponseWriter, r *http.Request) {
	today := h.now()
	h.writeLunar(w, today.Year(), int(today.Month()), today.Day())
}

// GetDateLunar handles GET /api/v1/lunar/date/{date}
func (h *Handlers) GetDateLunar(w http.ResponseWriter, r *http.Request) {
	dateStr := r.PathValue("date")
	if dateStr == "" {
		WriteBadRequest(w, "Date parameter is required")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid date format: %s. Use YYYY-MM-DD", dateStr))
		return
	}

	h.writeLunar(w, date.Year(), int(date.Month()), date.Day())
}

// GetRangeLunar handles GET /api/v1/lunar/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRangeLunar(w http.ResponseWriter, r *http.Request) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	startDate, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid start date format: %s. Use YYYY-MM-DD", startStr))
		return
	}

	endDate, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid end date format: %s. Use YYYY-MM-DD", endStr))
		return
	}

	if startDate.After(endDate) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	// Limit range to 90 days to prevent abuse
	daysDiff := int(endDate.Sub(startDate).Hours() / 24)
	if daysDiff > 90 {
		WriteBadRequest(w, "Date range cannot exceed 90 days")
		return
	}

	type dated struct {
		Date string `json:"date"`
		*calendar.LunarResult
	}

	var results []dated
	for current := startDate; !current.After(endDate); current = current.AddDate(0, 0, 1) {
		res, err := h.conv.SolarToLunar(current.Year(), int(current.Month()), current.Day())
		if err != nil {
			if calendar.IsOutOfRange(err) {
				WriteOutOfRange(w, err.Error(), calendar.OutOfRangeCode)
				return
			}
			h.logger.Error("range conversion failed",
				slog.String("date", current.Format("2006-01-02")),
				slog.Any("error", err))
			WriteInternalError(w, "Failed to convert date")
			return
		}
		results = append(results, dated{Date: current.Format("2006-01-02"), LunarResult: res})
	}

	WriteSuccess(w, map[string]interface{}{
		"start": startStr,
		"end":   endStr,
		"dates": results,
	})
}

// GetSolar handles GET /api/v1/solar/{year}/{month}/{day} — lunar to
// solar conversion; month is 1-13 with the 13th only in leap years.
func (h *Handlers) GetSolar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}
	month, err := strconv.Atoi(r.PathValue("month"))
	if err != nil || month < 1 || month > 13 {
		WriteBadRequest(w, "Invalid month: must be 1-13")
		return
	}
	day, err := strconv.Atoi(r.PathValue("day"))
	if err != nil || day < 1 || day > 30 {
		WriteBadRequest(w, "Invalid day: must be 1-30")
		return
	}

	res, err := h.conv.LunarToSolar(year, month, day)
	if err != nil {
		if calendar.IsOutOfRange(err) {
			WriteOutOfRange(w, err.Error(), calendar.OutOfRangeCode)
			return
		}
		h.logger.Error("lunar to solar failed", slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	WriteSuccess(w, res)
}

// GetYearTerms handles GET /api/v1/terms/{year} — all 24 solar terms of
// a Gregorian year.
func (h *Handlers) GetYearTerms(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.PathValue("year"))
	if err != nil {
		WriteBadRequest(w, "Invalid year")
		return
	}

	table := h.conv.Table()
	if year < table.MinYear()+1 || year > table.MaxYear() {
		re := &calendar.RangeError{Year: year, Min: table.MinYear() + 1, Max: table.MaxYear()}
		WriteOutOfRange(w, re.Error(), re.Code())
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"year":  year,
		"terms": calendar.YearTerms(year),
	})
}

// writeLunar runs the solar-to-lunar conversion and writes the result.
func (h *Handlers) writeLunar(w http.ResponseWriter, year, month, day int) {
	res, err := h.conv.SolarToLunar(year, month, day)
	if err != nil {
		if calendar.IsOutOfRange(err) {
			WriteOutOfRange(w, err.Error(), calendar.OutOfRangeCode)
			return
		}
		h.logger.Error("solar to lunar failed",
			slog.Int("year", year), slog.Int("month", month), slog.Int("day", day),
			slog.Any("error", err))
		WriteInternalError(w, "Failed to convert date")
		return
	}

	WriteSuccess(w, res)
}
