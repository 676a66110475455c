package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cleaning-service-scheduler/internal/testfixtures"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBookingLockerRejectsConcurrentHolder(t *testing.T) {
	client, srv := testfixtures.NewRedis(t)
	locker := NewRedisBookingLocker(client, 5*time.Second)
	employeeID := uuid.New()
	ctx := context.Background()

	err := locker.WithEmployeeLock(ctx, employeeID, func(ctx context.Context) error {
		assert.True(t, srv.Exists(employeeLockKeyPrefix+employeeID.String()))

		inner := locker.WithEmployeeLock(ctx, employeeID, func(context.Context) error {
			t.Fatal("second holder must not run")
			return nil
		})
		assert.ErrorIs(t, inner, ErrLockNotAcquired)
		return nil
	})
	require.NoError(t, err)

	assert.False(t, srv.Exists(employeeLockKeyPrefix+employeeID.String()))
}

func TestRedisBookingLockerDoesNotReleaseForeignLock(t *testing.T) {
	client, srv := testfixtures.NewRedis(t)
	locker := NewRedisBookingLocker(client, 5*time.Second)
	employeeID := uuid.New()
	key := employeeLockKeyPrefix + employeeID.String()

	err := locker.WithEmployeeLock(context.Background(), employeeID, func(context.Context) error {
		// Simulate expiry followed by another owner taking the key.
		require.NoError(t, srv.Set(key, "someone-else"))
		return nil
	})
	require.NoError(t, err)

	got, err := srv.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisBookingLockerLocksEmployeesIndependently(t *testing.T) {
	client, _ := testfixtures.NewRedis(t)
	locker := NewRedisBookingLocker(client, 5*time.Second)
	ctx := context.Background()

	err := locker.WithEmployeeLock(ctx, uuid.New(), func(ctx context.Context) error {
		return locker.WithEmployeeLock(ctx, uuid.New(), func(context.Context) error { return nil })
	})
	assert.NoError(t, err)
}

func TestLocalBookingLockerSerializesSameEmployee(t *testing.T) {
	locker := NewLocalBookingLocker(testfixtures.NewLogger())
	t.Cleanup(locker.Stop)

	employeeID := uuid.New()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = locker.WithEmployeeLock(context.Background(), employeeID, func(context.Context) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestLocalBookingLockerCleansIdleMutexes(t *testing.T) {
	locker := NewLocalBookingLocker(testfixtures.NewLogger())
	t.Cleanup(locker.Stop)

	require.NoError(t, locker.WithEmployeeLock(context.Background(), uuid.New(), func(context.Context) error { return nil }))

	assert.Equal(t, 0, locker.cleanupStaleMutexes(time.Now().Add(-time.Hour)))
	assert.Equal(t, 1, locker.cleanupStaleMutexes(time.Now().Add(time.Hour)))
}

func TestLocalBookingLockerSkipsSweptMutex(t *testing.T) {
	locker := NewLocalBookingLocker(testfixtures.NewLogger())
	t.Cleanup(locker.Stop)

	employeeID := uuid.New()
	stale := locker.employeeMutex(employeeID)
	require.Equal(t, 1, locker.cleanupStaleMutexes(time.Now().Add(time.Hour)))

	got := locker.lockEmployee(employeeID)
	defer got.mu.Unlock()

	assert.NotSame(t, stale, got)
	cur, ok := locker.employeeMu.Load(employeeID)
	require.True(t, ok)
	assert.Same(t, got, cur)
}

func TestLocalBookingLockerSerializesWhileSweeping(t *testing.T) {
	locker := NewLocalBookingLocker(testfixtures.NewLogger())
	t.Cleanup(locker.Stop)

	employeeID := uuid.New()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			default:
				locker.cleanupStaleMutexes(time.Now().Add(time.Hour))
			}
		}
	}()

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = locker.WithEmployeeLock(context.Background(), employeeID, func(context.Context) error {
				n := inside.Add(1)
				for {
					m := maxInside.Load()
					if n <= m || maxInside.CompareAndSwap(m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				inside.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()
	close(done)

	assert.Equal(t, int32(1), maxInside.Load())
}

func TestLocalBookingLockerStopIsIdempotent(t *testing.T) {
	locker := NewLocalBookingLocker(testfixtures.NewLogger())
	locker.Stop()
	locker.Stop()
}
