package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/api/response"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
)

// HouseTypeLister lists the distinct house types
type HouseTypeLister interface {
	ListHouseTypes(ctx context.Context) ([]string, error)
}

// EnvironmentLister searches the amenity catalog
type EnvironmentLister interface {
	List(ctx context.Context, search string) ([]house.Environment, error)
}

// ItemHandler serves the filter vocabularies of the search form
type ItemHandler struct {
	houseTypes   HouseTypeLister
	environments EnvironmentLister
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(houseTypes HouseTypeLister, environments EnvironmentLister) *ItemHandler {
	return &ItemHandler{
		houseTypes:   houseTypes,
		environments: environments,
	}
}

// HouseType is one entry of GET /api/item/house-types
type HouseType struct {
	Name string `json:"name"`
}

// HouseTypes handles GET /api/item/house-types
func (h *ItemHandler) HouseTypes(c *gin.Context) {
	names, err := h.houseTypes.ListHouseTypes(c.Request.Context())
	if err != nil {
		response.DatabaseError(c, err)
		return
	}

	types := make([]HouseType, len(names))
	for i, name := range names {
		types[i] = HouseType{Name: name}
	}
	response.SuccessList(c, types, len(types))
}

// Environments handles GET /api/item/environments?search=
func (h *ItemHandler) Environments(c *gin.Context) {
	envs, err := h.environments.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.DatabaseError(c, err)
		return
	}
	response.SuccessList(c, envs, len(envs))
}
