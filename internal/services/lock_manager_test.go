package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"crms/internal/apperrors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeCache implements CacheService over a plain map, mirroring the JSON
// encoding the redis wrapper applies to stored values.
type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = string(data)
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.data[key]; exists {
		return false, nil
	}
	f.data[key] = string(data)
	return true, nil
}

func (f *fakeCache) DeleteIfEquals(ctx context.Context, key string, value interface{}) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.data[key] != string(data) {
		return false, nil
	}
	delete(f.data, key)
	return true, nil
}

func (f *fakeCache) Publish(ctx context.Context, channel string, message interface{}) error {
	return nil
}

func (f *fakeCache) value(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	return raw, ok
}

func TestRedisLockAcquireRelease(t *testing.T) {
	cache := newFakeCache()
	locks := NewRedisLockManager(cache)
	carID := primitive.NewObjectID()
	key := "lock:car:" + carID.Hex()

	release, err := locks.AcquireCarLock(context.Background(), carID)
	if err != nil {
		t.Fatalf("AcquireCarLock() error = %v", err)
	}
	if _, held := cache.value(key); !held {
		t.Fatal("lock key not set after acquire")
	}

	release()
	if _, held := cache.value(key); held {
		t.Fatal("release left the lock key behind")
	}
}

func TestRedisLockStaleReleaseKeepsNewHolder(t *testing.T) {
	cache := newFakeCache()
	locks := NewRedisLockManager(cache)
	carID := primitive.NewObjectID()
	key := "lock:car:" + carID.Hex()
	ctx := context.Background()

	staleRelease, err := locks.AcquireCarLock(ctx, carID)
	if err != nil {
		t.Fatalf("AcquireCarLock() error = %v", err)
	}

	// The first holder's TTL expires while it is still working.
	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	release, err := locks.AcquireCarLock(ctx, carID)
	if err != nil {
		t.Fatalf("AcquireCarLock() after expiry error = %v", err)
	}
	current, _ := cache.value(key)

	// The slow first holder finally finishes; its release must not take
	// the lock away from the current holder.
	staleRelease()

	got, held := cache.value(key)
	if !held {
		t.Fatal("stale release deleted the current holder's lock")
	}
	if got != current {
		t.Fatalf("lock token changed after stale release: got %s, want %s", got, current)
	}

	release()
	if _, held := cache.value(key); held {
		t.Fatal("current holder's release left the lock key behind")
	}
}

func TestRedisLockContention(t *testing.T) {
	cache := newFakeCache()
	locks := NewRedisLockManager(cache)
	carID := primitive.NewObjectID()

	release, err := locks.AcquireCarLock(context.Background(), carID)
	if err != nil {
		t.Fatalf("AcquireCarLock() error = %v", err)
	}
	defer release()

	if _, err := locks.AcquireCarLock(context.Background(), carID); !apperrors.IsConflict(err) {
		t.Fatalf("AcquireCarLock() while held error = %v, want conflict", err)
	}
}
