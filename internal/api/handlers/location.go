package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/response"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
)

// LocationService serves administrative areas
type LocationService interface {
	Provinces(ctx context.Context) ([]location.Item, error)
	Districts(ctx context.Context, provinceID *int64) ([]location.Item, error)
	Wards(ctx context.Context, districtID *int64) ([]location.Item, error)
}

// LocationHandler handles location lookup endpoints
type LocationHandler struct {
	locations LocationService
}

// NewLocationHandler creates a new LocationHandler
func NewLocationHandler(locations LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// Provinces handles GET /api/locations/provinces
func (h *LocationHandler) Provinces(c *gin.Context) {
	items, err := h.locations.Provinces(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, err)
		return
	}
	response.SuccessList(c, items, len(items))
}

// Districts handles GET /api/locations/districts?province_id=
func (h *LocationHandler) Districts(c *gin.Context) {
	provinceID, ok := optionalID(c, "province_id")
	if !ok {
		return
	}

	items, err := h.locations.Districts(c.Request.Context(), provinceID)
	if err != nil {
		response.DatabaseError(c, err)
		return
	}
	response.SuccessList(c, items, len(items))
}

// Wards handles GET /api/locations/wards?district_id=
func (h *LocationHandler) Wards(c *gin.Context) {
	districtID, ok := optionalID(c, "district_id")
	if !ok {
		return
	}

	items, err := h.locations.Wards(c.Request.Context(), districtID)
	if err != nil {
		response.DatabaseError(c, err)
		return
	}
	response.SuccessList(c, items, len(items))
}

// optionalID parses an optional integer query parameter.
// On a malformed value it writes the 400 response and returns ok=false.
func optionalID(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.InvalidParameter(c, name, "must be an integer")
		return nil, false
	}
	return &id, true
}
