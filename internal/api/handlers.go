package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/trogers1052/stock-dashboard/internal/database"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Store is the read-only storage the handlers query
type Store interface {
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	GetCompany(ctx context.Context, id int) (*models.Company, error)
	GetPricePoints(ctx context.Context, companyID int) ([]*models.PricePoint, error)
	GetPricePointsSince(ctx context.Context, companyID int, since time.Time) ([]*models.PricePoint, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store  Store
	logger logrus.FieldLogger
	now    func() time.Time
}

// NewHandler creates a new Handler
func NewHandler(store Store, logger logrus.FieldLogger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ListCompanies handles GET /api/companies
func (h *Handler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.store.ListCompanies(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Message: messageSuccess, Data: companies})
}

// GetCompany handles GET /api/companies/{id}
func (h *Handler) GetCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, errCompanyNotFound)
		return
	}

	company, err := h.store.GetCompany(r.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, errCompanyNotFound)
		return
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, successResponse{Message: messageSuccess, Data: company})
}

// GetStockData handles GET /api/stocks/{companyId}?period=
func (h *Handler) GetStockData(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("period")
	period, known := models.ParsePeriod(token)

	companyID, err := strconv.Atoi(mux.Vars(r)["companyId"])
	if err != nil {
		// No company can match a non-numeric id
		respondJSON(w, http.StatusOK, seriesResponse{Message: messageSuccess, Data: []*models.PricePoint{}, Period: period})
		return
	}

	var points []*models.PricePoint
	if known {
		points, err = h.store.GetPricePointsSince(r.Context(), companyID, period.Cutoff(h.now()))
	} else {
		points, err = h.store.GetPricePoints(r.Context(), companyID)
	}
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	if points == nil {
		points = []*models.PricePoint{}
	}

	respondJSON(w, http.StatusOK, seriesResponse{Message: messageSuccess, Data: points, Period: period})
}

// HealthCheck handles GET /api/health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthResponse{
		Message:   messageHealthy,
		Timestamp: h.now().UTC().Format(timestampLayout),
	})
}

// NotFound handles unmatched routes and methods
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, errRouteNotFound)
}

func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.WithError(err).WithField("path", r.URL.Path).Error("Storage query failed")
	respondError(w, http.StatusInternalServerError, err.Error())
}
