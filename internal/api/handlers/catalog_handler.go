package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lostnlocal/lostnlocalapi/internal/service"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/response"
	"github.com/lostnlocal/lostnlocalapi/pkg/utils/zaplogger"
)

// CatalogHandler serves the public destination, hotel and insight reads
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler creates a new handler for the catalog endpoints
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GetDestinations returns all destinations, best rated first
func (h *CatalogHandler) GetDestinations(c echo.Context) error {
	destinations, err := h.catalog.GetDestinations()
	if err != nil {
		zaplogger.Error("error loading destinations", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, destinations, "Success")
}

// GetHotels returns all hotels, best rated first
func (h *CatalogHandler) GetHotels(c echo.Context) error {
	hotels, err := h.catalog.GetHotels()
	if err != nil {
		zaplogger.Error("error loading hotels", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, hotels, "Success")
}

// GetCulturalInsights returns all cultural insights, newest first
func (h *CatalogHandler) GetCulturalInsights(c echo.Context) error {
	insights, err := h.catalog.GetCulturalInsights()
	if err != nil {
		zaplogger.Error("error loading cultural insights", zaplogger.Fields{"error": err.Error()})
		return response.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	return response.SuccessResponse(c, insights, "Success")
}
