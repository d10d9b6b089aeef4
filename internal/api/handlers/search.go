package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/response"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
)

// HouseSearcher finds listings
type HouseSearcher interface {
	Search(ctx context.Context, filter house.SearchFilter) ([]house.House, error)
}

// SearchHandler handles listing search
type SearchHandler struct {
	houses HouseSearcher
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(houses HouseSearcher) *SearchHandler {
	return &SearchHandler{houses: houses}
}

// searchQuery is the query string of GET /api/search/house-rent
type searchQuery struct {
	ProvinceID     *int64   `form:"province_id"`
	DistrictID     *int64   `form:"district_id"`
	WardID         *int64   `form:"ward_id"`
	MinPrice       *float64 `form:"min_price"`
	MaxPrice       *float64 `form:"max_price"`
	MinAcreage     *float64 `form:"min_acreage"`
	MaxAcreage     *float64 `form:"max_acreage"`
	HouseType      *string  `form:"house_type"`
	ContractPeriod *string  `form:"contract_period"`
	Bedrooms       *int     `form:"bedrooms"`
	LivingRooms    *int     `form:"living_rooms"`
	Kitchens       *int     `form:"kitchens"`
	Limit          int      `form:"limit,default=10"`
	Offset         int      `form:"offset,default=0"`
}

func (q searchQuery) filter() house.SearchFilter {
	return house.SearchFilter{
		ProvinceID:     q.ProvinceID,
		DistrictID:     q.DistrictID,
		WardID:         q.WardID,
		MinPrice:       q.MinPrice,
		MaxPrice:       q.MaxPrice,
		MinAcreage:     q.MinAcreage,
		MaxAcreage:     q.MaxAcreage,
		HouseType:      q.HouseType,
		ContractPeriod: q.ContractPeriod,
		Bedrooms:       q.Bedrooms,
		LivingRooms:    q.LivingRooms,
		Kitchens:       q.Kitchens,
		Limit:          q.Limit,
		Offset:         q.Offset,
	}
}

// Search handles GET /api/search/house-rent
func (h *SearchHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, response.ErrCodeInvalidParameter,
			"Invalid query parameters", err.Error())
		return
	}

	filter := q.filter()
	if err := filter.Normalize(); err != nil {
		var field string
		switch {
		case errors.Is(err, house.ErrInvalidLimit):
			field = "limit"
		case errors.Is(err, house.ErrInvalidOffset):
			field = "offset"
		case errors.Is(err, house.ErrInvalidPriceRange):
			field = "min_price"
		case errors.Is(err, house.ErrInvalidAcreageRange):
			field = "min_acreage"
		default:
			response.InternalError(c, err)
			return
		}
		response.InvalidParameter(c, field, err.Error())
		return
	}

	houses, err := h.houses.Search(c.Request.Context(), filter)
	if err != nil {
		response.DatabaseError(c, err)
		return
	}

	response.SuccessWithPagination(c, houses, len(houses),
		response.NewPagination(filter.Limit, filter.Offset, len(houses)))
}
