// backend/routes/routes.go
package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/madruiz/pm9data/backend/handlers"
	"github.com/madruiz/pm9data/backend/services"
)

// SetupRoutes registers every API endpoint on the router.
func SetupRoutes(router *mux.Router, dataset *services.DatasetService, pipeline *services.PipelineService) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", handlers.GetHealthHandler(dataset)).Methods(http.MethodGet)
	api.HandleFunc("/projects", handlers.GetProjectsHandler(dataset)).Methods(http.MethodGet)
	api.HandleFunc("/projects/{referencia}", handlers.GetProjectHandler(dataset)).Methods(http.MethodGet)
	api.HandleFunc("/facets", handlers.GetFacetsHandler(dataset)).Methods(http.MethodGet)
	api.HandleFunc("/summary", handlers.GetSummaryHandler(dataset)).Methods(http.MethodGet)

	api.HandleFunc("/admin/refresh-data", handlers.RefreshDataHandler(pipeline)).Methods(http.MethodPost)
}
