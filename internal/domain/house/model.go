package house

import (
	"time"
)

// House represents a rental listing
// Maps to house_rent joined with its ward, district and province
type House struct {
	ID             int64         `json:"id"`
	Available      bool          `json:"available"`
	Published      time.Time     `json:"published"`
	Price          float64       `json:"price"`
	Acreage        float64       `json:"acreage"`
	Address        string        `json:"address"`
	HouseNumber    *string       `json:"house_number"`
	Street         *string       `json:"street"`
	WardID         int64         `json:"ward_id"`
	Latitude       *float64      `json:"latitude"`
	Longitude      *float64      `json:"longitude"`
	Title          string        `json:"title"`
	PhoneNumber    *string       `json:"phone_number"`
	CreateTime     time.Time     `json:"create_time"`
	UpdateTime     time.Time     `json:"update_time"`
	HouseType      *string       `json:"house_type"`
	ContractPeriod *string       `json:"contract_period"`
	Bedrooms       *int          `json:"bedrooms"`
	LivingRooms    *int          `json:"living_rooms"`
	Kitchens       *int          `json:"kitchens"`
	WardName       string        `json:"ward_name"`
	DistrictName   string        `json:"district_name"`
	ProvinceName   string        `json:"province_name"`
	Environments   []Environment `json:"environments"`
}

// Environment is an amenity tag attached to listings (e.g. "near market", "parking")
type Environment struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Value    string `json:"value"`
}

// HasCoordinates reports whether both latitude and longitude are known
func (h House) HasCoordinates() bool {
	return h.Latitude != nil && h.Longitude != nil
}

// SearchFilter represents filter options for searching listings
// Nil pointers mean "no constraint"
type SearchFilter struct {
	ProvinceID     *int64
	DistrictID     *int64
	WardID         *int64
	MinPrice       *float64
	MaxPrice       *float64
	MinAcreage     *float64
	MaxAcreage     *float64
	HouseType      *string
	ContractPeriod *string
	Bedrooms       *int
	LivingRooms    *int
	Kitchens       *int
	Limit          int // 1..100
	Offset         int // >= 0
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// NewSearchFilter returns an unconstrained filter for the first page
func NewSearchFilter() SearchFilter {
	return SearchFilter{Limit: DefaultLimit}
}

// Normalize validates SearchFilter and drops blank constraints
func (f *SearchFilter) Normalize() error {
	if f.Limit < 1 || f.Limit > MaxLimit {
		return ErrInvalidLimit
	}
	if f.Offset < 0 {
		return ErrInvalidOffset
	}

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return ErrInvalidPriceRange
	}
	if f.MinAcreage != nil && f.MaxAcreage != nil && *f.MinAcreage > *f.MaxAcreage {
		return ErrInvalidAcreageRange
	}

	// Blank strings carry no constraint
	if f.HouseType != nil && *f.HouseType == "" {
		f.HouseType = nil
	}
	if f.ContractPeriod != nil && *f.ContractPeriod == "" {
		f.ContractPeriod = nil
	}

	return nil
}
