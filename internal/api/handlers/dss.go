package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/response"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/dss"
)

// Comparer ranks a chosen set of listings
type Comparer interface {
	Compare(ctx context.Context, req dss.CompareRequest) (*dss.CompareResult, error)
}

// DSSHandler handles the decision support endpoints
type DSSHandler struct {
	comparer Comparer
}

// NewDSSHandler creates a new DSSHandler
func NewDSSHandler(comparer Comparer) *DSSHandler {
	return &DSSHandler{comparer: comparer}
}

// Compare handles POST /api/dss/compare
// The result is written as is, without the success envelope, since clients consume it directly.
func (h *DSSHandler) Compare(c *gin.Context) {
	var req dss.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeInvalidParameter,
			"Invalid request body", err.Error())
		return
	}
	if req.HouseRentIDs == nil {
		response.InvalidParameter(c, "house_rent_ids", "is required")
		return
	}

	result, err := h.comparer.Compare(c.Request.Context(), req)
	if err != nil {
		if dss.IsRequestError(err) {
			response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeValidation,
				"Invalid compare request", err.Error())
			return
		}
		response.DatabaseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
