package sqlite

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
)

// newSeededStore opens an in-memory database loaded with testdata/fixture.json
func newSeededStore(t *testing.T) *Store {
	t.Helper()

	ctx := context.Background()
	store, err := Open(ctx, MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	f, err := os.Open("testdata/fixture.json")
	require.NoError(t, err)
	defer f.Close()

	fixture, err := DecodeFixture(f)
	require.NoError(t, err)

	_, err = store.Seed(ctx, fixture)
	require.NoError(t, err)

	return store
}

func ptr[T any](v T) *T { return &v }

func houseIDs(houses []house.House) []int64 {
	return database.HouseIDs(houses)
}

func TestStore_Health(t *testing.T) {
	store := newSeededStore(t)

	status := store.Health(context.Background())
	assert.Equal(t, database.StatusHealthy, status.Status)
	assert.Equal(t, "sqlite", status.Driver)
	assert.Equal(t, int32(1), status.MaxConns)
}

func TestStore_SeedIsRepeatable(t *testing.T) {
	store := newSeededStore(t)

	f, err := os.Open("testdata/fixture.json")
	require.NoError(t, err)
	defer f.Close()
	fixture, err := DecodeFixture(f)
	require.NoError(t, err)

	stats, err := store.Seed(context.Background(), fixture)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Houses)

	houses, err := NewHouseRepository(store).GetByIDs(context.Background(), []int64{2})
	require.NoError(t, err)
	require.Len(t, houses, 1)
	assert.Len(t, houses[0].Environments, 3)
}

func TestHouseRepository_Search(t *testing.T) {
	store := newSeededStore(t)
	repo := NewHouseRepository(store)
	ctx := context.Background()

	t.Run("only available, ordered by id", func(t *testing.T) {
		houses, err := repo.Search(ctx, house.SearchFilter{Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 5}, houseIDs(houses))
	})

	t.Run("joined names and fields", func(t *testing.T) {
		houses, err := repo.Search(ctx, house.SearchFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, houses, 1)

		h := houses[0]
		assert.Equal(t, "Điện Biên", h.WardName)
		assert.Equal(t, "Ba Đình", h.DistrictName)
		assert.Equal(t, "Hà Nội", h.ProvinceName)
		assert.Equal(t, "2024-05-01", h.Published.Format("2006-01-02"))
		assert.Equal(t, 2024, h.UpdateTime.Year())
		require.NotNil(t, h.Latitude)
		assert.InDelta(t, 21.0333, *h.Latitude, 1e-9)
		require.NotNil(t, h.Bedrooms)
		assert.Equal(t, 1, *h.Bedrooms)
		assert.Nil(t, h.LivingRooms)
		assert.Equal(t, []house.Environment{
			{ID: 1, Category: "utility", Value: "Parking"},
			{ID: 2, Category: "surrounding", Value: "Near market"},
		}, h.Environments)
	})

	t.Run("filters", func(t *testing.T) {
		houses, err := repo.Search(ctx, house.SearchFilter{ProvinceID: ptr(int64(1)), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3}, houseIDs(houses))

		houses, err = repo.Search(ctx, house.SearchFilter{DistrictID: ptr(int64(11)), MaxPrice: ptr(5000000.0), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, houseIDs(houses))

		houses, err = repo.Search(ctx, house.SearchFilter{MinAcreage: ptr(30.0), Bedrooms: ptr(2), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 5}, houseIDs(houses))

		houses, err = repo.Search(ctx, house.SearchFilter{HouseType: ptr("Phòng trọ"), Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 3}, houseIDs(houses))
	})

	t.Run("pagination", func(t *testing.T) {
		houses, err := repo.Search(ctx, house.SearchFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 5}, houseIDs(houses))
	})

	t.Run("no match", func(t *testing.T) {
		houses, err := repo.Search(ctx, house.SearchFilter{WardID: ptr(int64(999)), Limit: 10})
		require.NoError(t, err)
		assert.NotNil(t, houses)
		assert.Empty(t, houses)
	})
}

func TestHouseRepository_GetByIDs(t *testing.T) {
	store := newSeededStore(t)
	repo := NewHouseRepository(store)
	ctx := context.Background()

	houses, err := repo.GetByIDs(ctx, []int64{5, 4, 3, 42})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 5}, houseIDs(houses), "unavailable and unknown ids are skipped")
	assert.Nil(t, houses[0].Latitude)

	houses, err = repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, houses)
}

func TestHouseRepository_ListHouseTypes(t *testing.T) {
	store := newSeededStore(t)

	types, err := NewHouseRepository(store).ListHouseTypes(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Căn hộ", "Chung cư mini", "Nhà riêng", "Phòng trọ"}, types)
}

func TestEnvironmentRepository(t *testing.T) {
	store := newSeededStore(t)
	repo := NewEnvironmentRepository(store)
	ctx := context.Background()

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	near, err := repo.List(ctx, "near")
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, int64(2), near[0].ID)

	none, err := repo.List(ctx, "100%")
	require.NoError(t, err)
	assert.Empty(t, none)

	byID, err := repo.GetByIDs(ctx, []int64{4, 1})
	require.NoError(t, err)
	assert.Equal(t, []house.Environment{
		{ID: 1, Category: "utility", Value: "Parking"},
		{ID: 4, Category: "utility", Value: "Air conditioner"},
	}, byID)
}

func TestLocationRepository(t *testing.T) {
	store := newSeededStore(t)
	repo := NewLocationRepository(store)
	ctx := context.Background()

	provinces, err := repo.ListProvinces(ctx)
	require.NoError(t, err)
	assert.Len(t, provinces, 2)

	districts, err := repo.ListDistricts(ctx, ptr(int64(1)))
	require.NoError(t, err)
	assert.Len(t, districts, 2)

	allDistricts, err := repo.ListDistricts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, allDistricts, 3)

	wards, err := repo.ListWards(ctx, ptr(int64(11)))
	require.NoError(t, err)
	assert.Equal(t, "Dịch Vọng", wards[0].Name)
	assert.Len(t, wards, 2)
}
