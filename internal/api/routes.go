package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// SetupRoutes configures all API routes and wraps them in the shared middleware
func SetupRoutes(handler *Handler, logger logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	api.HandleFunc("/companies", handler.ListCompanies).Methods("GET")
	api.HandleFunc("/companies/{id}", handler.GetCompany).Methods("GET")
	api.HandleFunc("/stocks/{companyId}", handler.GetStockData).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handler.NotFound)

	return allowCORS(logRequests(logger, recoverPanics(logger, r)))
}
