package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrLockNotAcquired means another request is booking the same employee.
var ErrLockNotAcquired = errors.New("employee lock not acquired")

const (
	employeeLockKeyPrefix = "lock:employee:"

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// BookingLocker serializes availability-check-then-write sections per
// employee so two requests cannot both see the same slot as free.
type BookingLocker interface {
	WithEmployeeLock(ctx context.Context, employeeID uuid.UUID, fn func(ctx context.Context) error) error
}

type redisBookingLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisBookingLocker guards each employee with a Redis key so the lock
// holds across API replicas. Contended callers fail fast with
// ErrLockNotAcquired instead of waiting.
func NewRedisBookingLocker(client *redis.Client, ttl time.Duration) BookingLocker {
	return &redisBookingLocker{
		client: client,
		ttl:    ttl,
	}
}

func (l *redisBookingLocker) WithEmployeeLock(ctx context.Context, employeeID uuid.UUID, fn func(ctx context.Context) error) error {
	key := employeeLockKeyPrefix + employeeID.String()
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire employee lock: %w", err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		_ = l.release(context.WithoutCancel(ctx), key, token)
	}()

	lockCtx, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(lockCtx)
}

// unlockScript deletes the key only if we still own it.
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *redisBookingLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release employee lock: %w", err)
	}
	return nil
}

// LocalBookingLocker is the single-process variant: one mutex per employee,
// waiting instead of failing. Used when Redis is not configured and in tests.
type LocalBookingLocker struct {
	log *logrus.Logger

	employeeMu sync.Map // map[uuid.UUID]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// NewLocalBookingLocker starts a background goroutine that drops idle
// mutexes. Call Stop during shutdown.
func NewLocalBookingLocker(log *logrus.Logger) *LocalBookingLocker {
	l := &LocalBookingLocker{
		log:      log,
		stopChan: make(chan struct{}),
	}

	l.wg.Add(1)
	go l.cleanupLoop()

	return l
}

func (l *LocalBookingLocker) WithEmployeeLock(ctx context.Context, employeeID uuid.UUID, fn func(ctx context.Context) error) error {
	mt := l.lockEmployee(employeeID)
	defer mt.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Stop is safe to call multiple times.
func (l *LocalBookingLocker) Stop() {
	if l.stopped.CompareAndSwap(false, true) {
		close(l.stopChan)
		l.wg.Wait()
		l.log.Info("LocalBookingLocker stopped")
	}
}

// lockEmployee returns the employee's mutex, locked. A mutex the sweeper
// dropped between lookup and Lock is no longer the published one, so the
// caller retries on the current entry.
func (l *LocalBookingLocker) lockEmployee(employeeID uuid.UUID) *mutexWithTimestamp {
	for {
		mt := l.employeeMutex(employeeID)
		mt.mu.Lock()
		if cur, ok := l.employeeMu.Load(employeeID); ok && cur == mt {
			mt.lastUsed.Store(time.Now().Unix())
			return mt
		}
		mt.mu.Unlock()
	}
}

func (l *LocalBookingLocker) employeeMutex(employeeID uuid.UUID) *mutexWithTimestamp {
	fresh := &mutexWithTimestamp{}
	fresh.lastUsed.Store(time.Now().Unix())
	mt, _ := l.employeeMu.LoadOrStore(employeeID, fresh)
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (l *LocalBookingLocker) cleanupLoop() {
	defer l.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.cleanupStaleMutexes(time.Now().Add(-mutexStaleThreshold))
		}
	}
}

// cleanupStaleMutexes only removes mutexes it can TryLock, checking
// lastUsed while holding the lock.
func (l *LocalBookingLocker) cleanupStaleMutexes(cutoff time.Time) int {
	var cleaned int

	l.employeeMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff.Unix() {
				l.employeeMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		l.log.Debugf("Cleaned up %d stale employee mutexes", cleaned)
	}
	return cleaned
}
