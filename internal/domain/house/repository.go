package house

import "context"

// Repository defines the interface for listing data access
type Repository interface {
	// Search returns available listings matching the filter, ordered by id, environments attached
	Search(ctx context.Context, filter SearchFilter) ([]House, error)

	// GetByIDs returns the available listings among ids, ordered by id, environments attached
	GetByIDs(ctx context.Context, ids []int64) ([]House, error)

	// ListHouseTypes returns the distinct non-empty house types, sorted
	ListHouseTypes(ctx context.Context) ([]string, error)
}

// EnvironmentRepository defines the interface for amenity catalog access
type EnvironmentRepository interface {
	// List returns amenities whose value contains search (case-insensitive); empty search lists all
	List(ctx context.Context, search string) ([]Environment, error)

	// GetByIDs returns the amenities among ids, ordered by id
	GetByIDs(ctx context.Context, ids []int64) ([]Environment, error)
}
