package backup

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"receta-segura/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/backup/export", exportHandler(svc))
	r.Post("/backup/import", importHandler(svc))
}

// exportHandler godoc
// @Summary Exportar respaldo
// @Description Devuelve un único documento JSON con tratamientos, dosis, pacientes y configuración.
// @Tags backup
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Success 200 {object} Document
// @Failure 401 {string} string "unauthorized"
// @Router /backup/export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		doc, err := svc.Export(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, doc)
	}
}

// importHandler godoc
// @Summary Restaurar respaldo
// @Description Reemplaza TODAS las colecciones por las del documento recibido (restauración destructiva).
// @Tags backup
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario"
// @Param payload body Document true "Documento exportado previamente"
// @Success 204 {string} string "sin contenido"
// @Failure 400 {string} string "invalid backup document"
// @Failure 401 {string} string "unauthorized"
// @Router /backup/import [post]
func importHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		raw, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		if err := svc.ImportJSON(r.Context(), raw); err != nil {
			if err == ErrInvalidDocument {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
