// backend/handlers/dashboard_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/madruiz/pm9data/backend/models"
	"github.com/madruiz/pm9data/backend/services"
	"github.com/shopspring/decimal"
)

// Helper to respond with JSON
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON response: %v", err)
		http.Error(w, `{"error":"Failed to marshal JSON response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper to respond with an error
func respondWithError(w http.ResponseWriter, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(w, code, map[string]string{"error": message})
}

// GetHealthHandler reports liveness plus how fresh the served table is.
func GetHealthHandler(dataset *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]interface{}{
			"status":    "ok",
			"proyectos": dataset.Count(),
		}
		if t := dataset.LoadedAt(); !t.IsZero() {
			payload["cargado_en"] = t
		}
		respondWithJSON(w, http.StatusOK, payload)
	}
}

// GetProjectsHandler returns the projects matching the query filters.
func GetProjectsHandler(dataset *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseProjectQuery(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		matched := dataset.Filter(query)
		respondWithJSON(w, http.StatusOK, models.ProjectsResponse{
			Total:     len(matched),
			Proyectos: matched,
		})
	}
}

// GetProjectHandler returns a single project by its Referencia.
func GetProjectHandler(dataset *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		referencia := mux.Vars(r)["referencia"]
		project, ok := dataset.Get(referencia)
		if !ok {
			respondWithError(w, http.StatusNotFound,
				fmt.Sprintf("No project with Referencia '%s'", referencia))
			return
		}
		respondWithJSON(w, http.StatusOK, project)
	}
}

// GetFacetsHandler returns the distinct values for every filter control.
func GetFacetsHandler(dataset *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, dataset.Facets())
	}
}

// GetSummaryHandler returns the dashboard aggregates for the filtered rows.
func GetSummaryHandler(dataset *services.DatasetService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query, err := parseProjectQuery(r)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondWithJSON(w, http.StatusOK, dataset.Summary(query))
	}
}

// parseProjectQuery extracts the dashboard filters from the URL query.
// Multi-valued filters repeat the parameter (?centro=A&centro=B); center
// names can legitimately contain commas, so no value splitting happens.
func parseProjectQuery(r *http.Request) (models.ProjectQuery, error) {
	q := r.URL.Query()
	query := models.ProjectQuery{
		Situacion: strings.TrimSpace(q.Get("situacion")),
		Programas: cleanMulti(q["programa"]),
		Acciones:  cleanMulti(q["accion"]),
		Areas:     cleanMulti(q["area"]),
		Centros:   cleanMulti(q["centro"]),
		Buscar:    strings.TrimSpace(q.Get("buscar")),
	}

	var err error
	if query.AnioDesde, err = parseYearParam(q.Get("anio_desde"), "anio_desde"); err != nil {
		return query, err
	}
	if query.AnioHasta, err = parseYearParam(q.Get("anio_hasta"), "anio_hasta"); err != nil {
		return query, err
	}
	if query.ImporteMin, err = parseDecimalParam(q.Get("importe_min"), "importe_min"); err != nil {
		return query, err
	}
	if query.ImporteMax, err = parseDecimalParam(q.Get("importe_max"), "importe_max"); err != nil {
		return query, err
	}
	return query, nil
}

func cleanMulti(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseYearParam(value, name string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	if _, err := strconv.Atoi(value); err != nil {
		return "", fmt.Errorf("parameter '%s' must be a year, got '%s'", name, value)
	}
	return value, nil
}

func parseDecimalParam(value, name string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, fmt.Errorf("parameter '%s' must be a number, got '%s'", name, value)
	}
	return &d, nil
}
