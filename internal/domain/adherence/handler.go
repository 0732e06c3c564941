package adherence

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"receta-segura/internal/domain/doses"
	"receta-segura/internal/domain/treatments"
	"receta-segura/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// Las vistas de reporte operan siempre sobre el snapshot completo de dosis
// que entrega el servicio; el cálculo en sí es puro (calculator.go).
func RegisterRoutes(r chi.Router, dosesSvc *doses.Service, treatmentsSvc *treatments.Service) {
	r.Get("/doses/today", todayPendingHandler(dosesSvc))
	r.Get("/doses/upcoming", upcomingHandler(dosesSvc))
	r.Get("/doses/history", historyHandler(dosesSvc))

	r.Get("/adherence/summary", summaryHandler(dosesSvc))
	r.Get("/adherence/daily", dailyHandler(dosesSvc))

	r.Get("/treatments/{treatmentID}/adherence", treatmentAdherenceHandler(dosesSvc, treatmentsSvc))
}

// todayPendingHandler godoc
// @Summary Dosis pendientes de hoy
// @Description Dosis en estado pending programadas para el día de hoy, ordenadas por hora ascendente. Una dosis vencida sigue pendiente hasta que el usuario actúe (no hay barrido automático a missed).
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 200 {array} doses.Dose
// @Failure 401 {string} string "unauthorized"
// @Router /doses/today [get]
func todayPendingHandler(svc *doses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, PendingToday(all, time.Now()))
	}
}

// upcomingHandler godoc
// @Summary Próximas dosis
// @Description Dosis pendientes entre ahora y `days` días adelante (default 7).
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param days query int false "Días hacia adelante (default 7)"
// @Success 200 {array} doses.Dose
// @Failure 401 {string} string "unauthorized"
// @Router /doses/upcoming [get]
func upcomingHandler(svc *doses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 90 {
				days = n
			}
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, Upcoming(all, time.Now(), days))
	}
}

// historyHandler godoc
// @Summary Historial de dosis
// @Description Dosis resueltas (taken/missed/skipped) más recientes primero, filtrables por estado y período. El filtro de período usa takenAt si existe, si no scheduledTime.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param limit query int false "Máximo de dosis a devolver"
// @Param status query string false "pending|taken|missed|skipped|all"
// @Param period query string false "week|month|all (default all)"
// @Success 200 {array} doses.Dose
// @Failure 400 {string} string "Parámetros inválidos"
// @Failure 401 {string} string "unauthorized"
// @Router /doses/history [get]
func historyHandler(svc *doses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
				return
			}
			limit = n
		}

		period := Period(strings.TrimSpace(r.URL.Query().Get("period")))
		if period == "" {
			period = PeriodAll
		}
		if !ValidPeriod(period) {
			http.Error(w, "period must be week|month|all", http.StatusBadRequest)
			return
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := History(all, 0)
		out = FilterByStatus(out, strings.TrimSpace(r.URL.Query().Get("status")))
		out = FilterByPeriod(out, period, time.Now())
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}

		writeJSON(w, http.StatusOK, out)
	}
}

type summaryResponse struct {
	Period  Period                  `json:"period"`
	Stats   Stats                   `json:"stats"`
	Grouped map[string][]doses.Dose `json:"grouped"`
}

// summaryHandler godoc
// @Summary Resumen de adherencia por período
// @Description Estadísticas de la pantalla de historial: porcentaje = taken / (taken + missed), excluyendo skipped y pending del denominador. Incluye las dosis agrupadas por día calendario.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param period query string false "week|month|all (default week)"
// @Success 200 {object} summaryResponse
// @Failure 400 {string} string "period inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /adherence/summary [get]
func summaryHandler(svc *doses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		period := Period(strings.TrimSpace(r.URL.Query().Get("period")))
		if period == "" {
			period = PeriodWeek
		}
		if !ValidPeriod(period) {
			http.Error(w, "period must be week|month|all", http.StatusBadRequest)
			return
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filtered := FilterByPeriod(History(all, 0), period, time.Now())

		writeJSON(w, http.StatusOK, summaryResponse{
			Period:  period,
			Stats:   PeriodStats(filtered),
			Grouped: GroupByDay(filtered),
		})
	}
}

// dailyHandler godoc
// @Summary Desglose diario taken/missed
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param days query int false "Cantidad de días (default 7)"
// @Success 200 {array} DayBreakdown
// @Failure 401 {string} string "unauthorized"
// @Router /adherence/daily [get]
func dailyHandler(svc *doses.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		days := 7
		if v := r.URL.Query().Get("days"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 90 {
				days = n
			}
		}

		all, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, LastNDays(all, time.Now(), days))
	}
}

// treatmentAdherenceHandler godoc
// @Summary Adherencia de un tratamiento
// @Description Estadísticas de la vista de tratamiento: porcentaje = taken / total, donde el total incluye pendientes y saltadas. Fórmula distinta a /adherence/summary, a propósito.
// @Tags adherence
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param treatmentID path string true "ID del tratamiento"
// @Success 200 {object} Stats
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "treatment not found"
// @Router /treatments/{treatmentID}/adherence [get]
func treatmentAdherenceHandler(dosesSvc *doses.Service, treatmentsSvc *treatments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		treatmentID := chi.URLParam(r, "treatmentID")
		if _, err := treatmentsSvc.GetByID(r.Context(), treatmentID); err != nil {
			http.Error(w, "treatment not found", http.StatusNotFound)
			return
		}

		scoped, err := dosesSvc.ListByTreatment(r.Context(), treatmentID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, TreatmentStats(scoped))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
