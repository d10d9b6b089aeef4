package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/middleware"
)

// SuccessResponse represents a successful API response
type SuccessResponse struct {
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Meta       Meta        `json:"meta"`
}

// Pagination represents offset based pagination information
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasPrev bool `json:"has_prev"`
	// HasNext is a hint: a full page may still be the last one
	HasNext bool `json:"has_next"`
}

// Meta represents metadata in response
type Meta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Count     int       `json:"count"`
}

// Success sends a successful response with data
func Success(c *gin.Context, data interface{}) {
	response := SuccessResponse{
		Data: data,
		Meta: Meta{
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
		},
	}
	c.JSON(http.StatusOK, response)
}

// SuccessList sends a successful response with list data and count
func SuccessList(c *gin.Context, data interface{}, count int) {
	response := SuccessResponse{
		Data: data,
		Meta: Meta{
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
			Count:     count,
		},
	}
	c.JSON(http.StatusOK, response)
}

// SuccessWithPagination sends a successful response with pagination
func SuccessWithPagination(c *gin.Context, data interface{}, count int, pagination *Pagination) {
	response := SuccessResponse{
		Data:       data,
		Pagination: pagination,
		Meta: Meta{
			RequestID: middleware.GetRequestID(c),
			Timestamp: time.Now(),
			Count:     count,
		},
	}
	c.JSON(http.StatusOK, response)
}

// NewPagination creates a new Pagination object for a page of count items
func NewPagination(limit, offset, count int) *Pagination {
	return &Pagination{
		Limit:   limit,
		Offset:  offset,
		HasPrev: offset > 0,
		HasNext: count == limit,
	}
}
