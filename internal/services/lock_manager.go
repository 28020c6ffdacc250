package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"crms/internal/apperrors"
	"crms/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LockManager serializes booking decisions per car. The lifecycle service
// holds the lock across its read-check-write sequence so two concurrent
// requests for the same car cannot both observe "available".
type LockManager interface {
	// AcquireCarLock blocks (bounded) until the car's lock is held and
	// returns a release function. Returns ErrConflict when the lock cannot
	// be obtained before the wait deadline.
	AcquireCarLock(ctx context.Context, carID primitive.ObjectID) (func(), error)
}

// redisLockManager implements the lock with SetNX and a random token, so a
// crashed holder's lock expires instead of wedging the car.
type redisLockManager struct {
	cache CacheService
}

func NewRedisLockManager(cache CacheService) LockManager {
	return &redisLockManager{cache: cache}
}

func (m *redisLockManager) AcquireCarLock(ctx context.Context, carID primitive.ObjectID) (func(), error) {
	key := fmt.Sprintf("lock:car:%s", carID.Hex())
	token := uuid.NewString()
	deadline := time.Now().Add(utils.CarLockMaxWait)

	for {
		acquired, err := m.cache.SetNX(ctx, key, token, utils.CarLockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire car lock: %w", err)
		}
		if acquired {
			release := func() {
				releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				// Compare-and-delete: if the TTL already expired and another
				// request holds the lock, leave its key alone.
				m.cache.DeleteIfEquals(releaseCtx, key, token)
			}
			return release, nil
		}

		if time.Now().After(deadline) {
			return nil, apperrors.NewConflict("car %s is locked by another booking request", carID.Hex())
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(utils.CarLockRetryInterval):
		}
	}
}

// memoryLockManager provides the same guarantee in-process, for the memory
// store backend and for tests.
type memoryLockManager struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMemoryLockManager() LockManager {
	return &memoryLockManager{locks: make(map[string]*sync.Mutex)}
}

func (m *memoryLockManager) AcquireCarLock(ctx context.Context, carID primitive.ObjectID) (func(), error) {
	key := carID.Hex()

	m.mu.Lock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	m.mu.Unlock()

	lock.Lock()
	return lock.Unlock, nil
}
