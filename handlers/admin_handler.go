// backend/handlers/admin_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/madruiz/pm9data/backend/services"
)

// RefreshDataHandler triggers a full pipeline run and reloads the served
// dataset from the fresh export. The run is synchronous: the response
// carries the run report, so an operator curling the endpoint sees the
// drop and remap counts immediately.
func RefreshDataHandler(pipeline *services.PipelineService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := pipeline.RefreshData()
		if err != nil {
			if errors.Is(err, services.ErrRefreshInProgress) {
				respondWithError(w, http.StatusConflict, err.Error())
				return
			}
			respondWithError(w, http.StatusInternalServerError,
				fmt.Sprintf("Data refresh failed: %v", err))
			return
		}
		respondWithJSON(w, http.StatusOK, report)
	}
}
