package location

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/domain/location"
	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/infra/cache"
)

type fakeRepo struct {
	calls   atomic.Int32
	err     error
	release chan struct{}
}

func (r *fakeRepo) ListProvinces(ctx context.Context) ([]location.Item, error) {
	r.calls.Add(1)
	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return []location.Item{{ID: 1, Name: "Hà Nội"}, {ID: 2, Name: "Hồ Chí Minh"}}, nil
}

func (r *fakeRepo) ListDistricts(ctx context.Context, provinceID *int64) ([]location.Item, error) {
	r.calls.Add(1)
	if provinceID == nil {
		return []location.Item{{ID: 10, Name: "Ba Đình"}, {ID: 20, Name: "Quận 1"}}, nil
	}
	return []location.Item{{ID: 10, Name: "Ba Đình"}}, nil
}

func (r *fakeRepo) ListWards(ctx context.Context, districtID *int64) ([]location.Item, error) {
	r.calls.Add(1)
	return []location.Item{}, nil
}

type brokenCache struct{ cache.MemoryStore }

func (*brokenCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func (*brokenCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("connection reset")
}

func TestProvincesCached(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, cache.NewMemoryStore(), time.Minute)
	ctx := context.Background()

	first, err := svc.Provinces(ctx)
	require.NoError(t, err)
	second, err := svc.Provinces(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestDistrictsKeyedByProvince(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, cache.NewMemoryStore(), time.Minute)
	ctx := context.Background()
	one := int64(1)

	all, err := svc.Districts(ctx, nil)
	require.NoError(t, err)
	some, err := svc.Districts(ctx, &one)
	require.NoError(t, err)
	_, err = svc.Districts(ctx, &one)
	require.NoError(t, err)

	assert.Len(t, all, 2)
	assert.Len(t, some, 1)
	assert.Equal(t, int32(2), repo.calls.Load())
}

func TestRepositoryErrorNotCached(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	store := cache.NewMemoryStore()
	svc := NewService(repo, store, time.Minute)

	_, err := svc.Provinces(context.Background())
	assert.ErrorIs(t, err, repo.err)
	assert.Zero(t, store.Len())
}

func TestBrokenCacheFallsBack(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, &brokenCache{}, time.Minute)

	items, err := svc.Provinces(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestConcurrentMissesShareLoad(t *testing.T) {
	repo := &fakeRepo{release: make(chan struct{})}
	svc := NewService(repo, cache.NewMemoryStore(), time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := svc.Provinces(context.Background())
			assert.NoError(t, err)
			assert.Len(t, items, 2)
		}()
	}

	// let the callers pile up on the in-flight load
	time.Sleep(50 * time.Millisecond)
	close(repo.release)
	wg.Wait()

	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestCancelledCallerDoesNotFailSharedLoad(t *testing.T) {
	repo := &fakeRepo{release: make(chan struct{})}
	svc := NewService(repo, cache.NewMemoryStore(), time.Minute)

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := svc.Provinces(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return repo.calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		items []location.Item
		err   error
	}
	second := make(chan result, 1)
	go func() {
		items, err := svc.Provinces(context.Background())
		second <- result{items, err}
	}()

	// second caller joins the in-flight load before the first gives up
	time.Sleep(20 * time.Millisecond)
	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(repo.release)
	got := <-second
	require.NoError(t, got.err)
	assert.Len(t, got.items, 2)
	assert.Equal(t, int32(1), repo.calls.Load())

	// the shared load still filled the cache
	items, err := svc.Provinces(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int32(1), repo.calls.Load())
}
