package storage

import (
	"fmt"
	"strings"
	"time"
)

// Store remembers which users have already been published downstream.
type Store interface {
	Close() error
	SeenUser(id uint32) (bool, error)
	MarkUser(id uint32) error
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	UserTTL         time.Duration
	CleanupInterval time.Duration
}

const (
	defaultUserTTL         = 7 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		store, err := openBolt(path, opts)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.UserTTL <= 0 {
		opts.UserTTL = defaultUserTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                  { return nil }
func (noopStore) SeenUser(uint32) (bool, error) { return false, nil }
func (noopStore) MarkUser(uint32) error         { return nil }
