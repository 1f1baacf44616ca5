package store

import (
	"fmt"

	"github.com/penwyp/go-brewpub-monitor/internal/core/batchout"
)

const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// HistoryStore is a batchout.Store that can also be cleared and closed
type HistoryStore interface {
	batchout.Store
	Clear() error
	Close() error
	Describe() string
}

// Options selects and configures a backend
type Options struct {
	Backend       string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
}

// New opens the configured history backend
func New(opts Options) (HistoryStore, error) {
	switch opts.Backend {
	case "", BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisKey)
	default:
		return nil, fmt.Errorf("unknown history store backend %q (file, redis)", opts.Backend)
	}
}
