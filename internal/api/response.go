package api

import (
	"encoding/json"
	"net/http"

	"github.com/trogers1052/stock-dashboard/internal/models"
)

const (
	messageSuccess = "success"
	messageHealthy = "Stock Dashboard API is running"

	errCompanyNotFound = "Company not found"
	errRouteNotFound   = "Route not found"
	errInternal        = "Something went wrong!"

	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type successResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type seriesResponse struct {
	Message string               `json:"message"`
	Data    []*models.PricePoint `json:"data"`
	Period  models.Period        `json:"period"`
}

type healthResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}
