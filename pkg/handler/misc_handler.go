// Handler for miscellaneous endpoints such as health check

package handler

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Health    string    `json:"health"`
	Records   int       `json:"records"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func (app *AppContext) HealthCheck(w http.ResponseWriter, r *http.Request) {

	response := HealthResponse{
		Health:    "ok",
		Records:   app.Dataset.Len(),
		Source:    app.Dataset.Source(),
		Timestamp: time.Now(),
	}

	writeJSON(w, http.StatusOK, response)
}
