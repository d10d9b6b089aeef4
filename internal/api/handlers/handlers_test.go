package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/dss"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/house"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errBoom = errors.New("connection refused")

func serve(t *testing.T, method, route, target string, body string, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := gin.New()
	r.Handle(method, route, h)

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()
	e, ok := body["error"].(map[string]any)
	require.True(t, ok, "missing error envelope: %v", body)
	return e["code"].(string)
}

// ---- health ----

type fakeDB struct{ status string }

func (f fakeDB) Health(ctx context.Context) *database.HealthStatus {
	return &database.HealthStatus{Status: f.status, Driver: "sqlite", ResponseTime: "1ms"}
}

type fakeCache struct{ err error }

func (fakeCache) Name() string { return "memory" }

func (f fakeCache) Ping(ctx context.Context) error { return f.err }

func TestHealth(t *testing.T) {
	h := NewHealthHandler(fakeDB{status: database.StatusHealthy}, nil, "test")
	w, body := serve(t, http.MethodGet, "/health", "/health", "", h.Health)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestReady(t *testing.T) {
	tests := []struct {
		name     string
		db       string
		cacheErr error
		want     int
		checks   map[string]any
	}{
		{"all ok", database.StatusHealthy, nil, http.StatusOK, map[string]any{"database": "ok", "cache": "ok"}},
		{"degraded db", database.StatusDegraded, nil, http.StatusOK, map[string]any{"database": "ok", "cache": "ok"}},
		{"db down", database.StatusUnhealthy, nil, http.StatusServiceUnavailable, map[string]any{"database": "error", "cache": "ok"}},
		{"cache down", database.StatusHealthy, errBoom, http.StatusOK, map[string]any{"database": "ok", "cache": "error"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(fakeDB{status: tt.db}, fakeCache{err: tt.cacheErr}, "test")
			w, body := serve(t, http.MethodGet, "/health/ready", "/health/ready", "", h.Ready)
			assert.Equal(t, tt.want, w.Code)
			assert.Equal(t, tt.checks, body["checks"])
		})
	}
}

func TestDetailed(t *testing.T) {
	h := NewHealthHandler(fakeDB{status: database.StatusHealthy}, fakeCache{err: errBoom}, "1.2.3")
	w, body := serve(t, http.MethodGet, "/api/health/detailed", "/api/health/detailed", "", h.Detailed)
	require.Equal(t, http.StatusOK, w.Code)

	data := body["data"].(map[string]any)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "1.2.3", data["version"])

	components := data["components"].(map[string]any)
	db := components["database"].(map[string]any)
	assert.Equal(t, "sqlite", db["details"].(map[string]any)["driver"])
	cache := components["cache"].(map[string]any)
	assert.Equal(t, "unhealthy", cache["status"])
	assert.Equal(t, errBoom.Error(), cache["message"])
}

// ---- locations ----

type fakeLocations struct {
	provinceID *int64
	err        error
}

func (f *fakeLocations) Provinces(ctx context.Context) ([]location.Item, error) {
	return []location.Item{{ID: 1, Name: "Ha Noi"}, {ID: 2, Name: "Da Nang"}}, f.err
}

func (f *fakeLocations) Districts(ctx context.Context, provinceID *int64) ([]location.Item, error) {
	f.provinceID = provinceID
	return []location.Item{{ID: 10, Name: "Ba Dinh"}}, f.err
}

func (f *fakeLocations) Wards(ctx context.Context, districtID *int64) ([]location.Item, error) {
	return []location.Item{}, f.err
}

func TestLocationHandler(t *testing.T) {
	t.Run("provinces", func(t *testing.T) {
		h := NewLocationHandler(&fakeLocations{})
		w, body := serve(t, http.MethodGet, "/p", "/p", "", h.Provinces)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, body["data"], 2)
		assert.EqualValues(t, 2, body["meta"].(map[string]any)["count"])
	})

	t.Run("districts by province", func(t *testing.T) {
		fake := &fakeLocations{}
		h := NewLocationHandler(fake)
		w, _ := serve(t, http.MethodGet, "/d", "/d?province_id=7", "", h.Districts)
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, fake.provinceID)
		assert.EqualValues(t, 7, *fake.provinceID)
	})

	t.Run("all districts", func(t *testing.T) {
		fake := &fakeLocations{}
		h := NewLocationHandler(fake)
		w, _ := serve(t, http.MethodGet, "/d", "/d", "", h.Districts)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, fake.provinceID)
	})

	t.Run("malformed id", func(t *testing.T) {
		h := NewLocationHandler(&fakeLocations{})
		w, body := serve(t, http.MethodGet, "/w", "/w?district_id=abc", "", h.Wards)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, body))
	})

	t.Run("empty wards", func(t *testing.T) {
		h := NewLocationHandler(&fakeLocations{})
		w, body := serve(t, http.MethodGet, "/w", "/w?district_id=3", "", h.Wards)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, body["data"])
	})

	t.Run("repository error", func(t *testing.T) {
		h := NewLocationHandler(&fakeLocations{err: errBoom})
		w, body := serve(t, http.MethodGet, "/p", "/p", "", h.Provinces)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "DATABASE_ERROR", errorCode(t, body))
	})
}

// ---- search ----

type fakeSearcher struct {
	filter house.SearchFilter
	calls  int
	houses []house.House
	err    error
}

func (f *fakeSearcher) Search(ctx context.Context, filter house.SearchFilter) ([]house.House, error) {
	f.calls++
	f.filter = filter
	return f.houses, f.err
}

func TestSearchHandler(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		fake := &fakeSearcher{houses: []house.House{{ID: 1}, {ID: 2}}}
		h := NewSearchHandler(fake)
		w, body := serve(t, http.MethodGet, "/s", "/s", "", h.Search)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, house.DefaultLimit, fake.filter.Limit)
		assert.Equal(t, 0, fake.filter.Offset)
		assert.Nil(t, fake.filter.ProvinceID)

		pagination := body["pagination"].(map[string]any)
		assert.EqualValues(t, 10, pagination["limit"])
		assert.Equal(t, false, pagination["has_next"])
		assert.EqualValues(t, 2, body["meta"].(map[string]any)["count"])
	})

	t.Run("filters", func(t *testing.T) {
		fake := &fakeSearcher{}
		h := NewSearchHandler(fake)
		target := "/s?province_id=1&min_price=2.5&max_price=4&house_type=Apartment&bedrooms=2&contract_period=&limit=5&offset=10"
		w, _ := serve(t, http.MethodGet, "/s", target, "", h.Search)
		require.Equal(t, http.StatusOK, w.Code)

		f := fake.filter
		require.NotNil(t, f.ProvinceID)
		assert.EqualValues(t, 1, *f.ProvinceID)
		require.NotNil(t, f.MinPrice)
		assert.Equal(t, 2.5, *f.MinPrice)
		require.NotNil(t, f.HouseType)
		assert.Equal(t, "Apartment", *f.HouseType)
		require.NotNil(t, f.Bedrooms)
		assert.Equal(t, 2, *f.Bedrooms)
		assert.Nil(t, f.ContractPeriod)
		assert.Equal(t, 5, f.Limit)
		assert.Equal(t, 10, f.Offset)
	})

	invalid := []struct {
		name   string
		target string
		code   string
	}{
		{"zero limit", "/s?limit=0", "VALIDATION_ERROR"},
		{"limit above max", "/s?limit=101", "VALIDATION_ERROR"},
		{"negative offset", "/s?offset=-1", "VALIDATION_ERROR"},
		{"price range", "/s?min_price=9&max_price=1", "VALIDATION_ERROR"},
		{"non numeric", "/s?min_acreage=big", "INVALID_PARAMETER"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSearcher{}
			h := NewSearchHandler(fake)
			w, body := serve(t, http.MethodGet, "/s", tt.target, "", h.Search)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, body))
			assert.Zero(t, fake.calls)
		})
	}

	t.Run("repository error", func(t *testing.T) {
		h := NewSearchHandler(&fakeSearcher{err: errBoom})
		w, body := serve(t, http.MethodGet, "/s", "/s", "", h.Search)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "DATABASE_ERROR", errorCode(t, body))
	})
}

// ---- items ----

type fakeItems struct {
	search string
	err    error
}

func (f *fakeItems) ListHouseTypes(ctx context.Context) ([]string, error) {
	return []string{"Apartment", "Studio"}, f.err
}

func (f *fakeItems) List(ctx context.Context, search string) ([]house.Environment, error) {
	f.search = search
	return []house.Environment{{ID: 1, Category: "security", Value: "Guarded parking"}}, f.err
}

func TestItemHandler(t *testing.T) {
	t.Run("house types", func(t *testing.T) {
		fake := &fakeItems{}
		h := NewItemHandler(fake, fake)
		w, body := serve(t, http.MethodGet, "/t", "/t", "", h.HouseTypes)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{
			map[string]any{"name": "Apartment"},
			map[string]any{"name": "Studio"},
		}, body["data"])
	})

	t.Run("environments search", func(t *testing.T) {
		fake := &fakeItems{}
		h := NewItemHandler(fake, fake)
		w, body := serve(t, http.MethodGet, "/e", "/e?search=Park", "", h.Environments)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Park", fake.search)
		assert.Len(t, body["data"], 1)
	})

	t.Run("repository error", func(t *testing.T) {
		fake := &fakeItems{err: errBoom}
		h := NewItemHandler(fake, fake)
		w, _ := serve(t, http.MethodGet, "/e", "/e", "", h.Environments)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

// ---- dss ----

type fakeComparer struct {
	req    dss.CompareRequest
	calls  int
	result *dss.CompareResult
	err    error
}

func (f *fakeComparer) Compare(ctx context.Context, req dss.CompareRequest) (*dss.CompareResult, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return dss.EmptyResult(), nil
}

func TestDSSCompare(t *testing.T) {
	t.Run("raw result", func(t *testing.T) {
		fake := &fakeComparer{result: &dss.CompareResult{
			RankedHouses:     []dss.RankedHouse{{House: house.House{ID: 3}, TopsisScore: 0.7, Rank: 1}},
			IdealBest:        map[string]dss.Value{"price": 1},
			IdealWorst:       map[string]dss.Value{"price": 9},
			CriterionWeights: map[string]float64{"price": 1},
			Amenities:        []dss.AmenityWeight{},
		}}
		h := NewDSSHandler(fake)
		body := `{"house_rent_ids":[3],"amenities":[1,2],"weights":[2,1],"preferred_location":[21.0,105.8]}`
		w, decoded := serve(t, http.MethodPost, "/c", "/c", body, h.Compare)
		require.Equal(t, http.StatusOK, w.Code)

		assert.NotContains(t, decoded, "data")
		ranked := decoded["ranked_houses"].([]any)
		require.Len(t, ranked, 1)
		assert.EqualValues(t, 3, ranked[0].(map[string]any)["id"])

		assert.Equal(t, []int64{3}, fake.req.HouseRentIDs)
		assert.Equal(t, []float64{2, 1}, fake.req.Weights)
		require.NotNil(t, fake.req.PreferredLocation)
		assert.Equal(t, 105.8, fake.req.PreferredLocation.Longitude)
	})

	t.Run("empty ids", func(t *testing.T) {
		fake := &fakeComparer{}
		h := NewDSSHandler(fake)
		w, decoded := serve(t, http.MethodPost, "/c", "/c", `{"house_rent_ids":[]}`, h.Compare)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []any{}, decoded["ranked_houses"])
		assert.Equal(t, 1, fake.calls)
	})

	rejected := []struct {
		name string
		body string
		code string
	}{
		{"missing ids", `{"amenities":[1]}`, "VALIDATION_ERROR"},
		{"malformed json", `{"house_rent_ids":`, "INVALID_PARAMETER"},
		{"location not a pair", `{"house_rent_ids":[1],"preferred_location":[1]}`, "INVALID_PARAMETER"},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeComparer{}
			h := NewDSSHandler(fake)
			w, decoded := serve(t, http.MethodPost, "/c", "/c", tt.body, h.Compare)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, errorCode(t, decoded))
			assert.Zero(t, fake.calls)
		})
	}

	t.Run("request error", func(t *testing.T) {
		h := NewDSSHandler(&fakeComparer{err: fmt.Errorf("compare: %w", dss.ErrAmenityWeightsMismatch)})
		w, decoded := serve(t, http.MethodPost, "/c", "/c", `{"house_rent_ids":[1],"amenities":[1],"weights":[1,2]}`, h.Compare)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, decoded))
	})

	t.Run("repository error", func(t *testing.T) {
		h := NewDSSHandler(&fakeComparer{err: fmt.Errorf("fetch houses: %w", errBoom)})
		w, decoded := serve(t, http.MethodPost, "/c", "/c", `{"house_rent_ids":[1]}`, h.Compare)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "DATABASE_ERROR", errorCode(t, decoded))
	})
}
