package location

import "context"

// Repository defines the interface for administrative area lookups
type Repository interface {
	ListProvinces(ctx context.Context) ([]Item, error)

	// ListDistricts returns every district when provinceID is nil
	ListDistricts(ctx context.Context, provinceID *int64) ([]Item, error)

	// ListWards returns every ward when districtID is nil
	ListWards(ctx context.Context, districtID *int64) ([]Item, error)
}
