// Package storage holds the process-wide redis handle backing the room
// registry. Engine state never touches redis; only room membership is
// stored there, under TTLs.
package storage

import (
	"context"

	"github.com/redis/go-redis/v9"
)

var (
	Rdb *redis.Client
	Ctx = context.Background()
)

// InitRedis connects and pings once at startup. The room registry is
// unusable without a live connection, so callers treat an error here as
// fatal.
func InitRedis(addr, password string, db int) error {
	Rdb = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return Rdb.Ping(Ctx).Err()
}
