package testfixtures

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// NewRedis starts an in-memory Redis server and returns a client for it.
func NewRedis(tb testing.TB) (*redis.Client, *miniredis.Miniredis) {
	tb.Helper()

	srv := miniredis.RunT(tb)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	tb.Cleanup(func() { _ = client.Close() })
	return client, srv
}
