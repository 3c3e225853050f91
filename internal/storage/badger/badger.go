package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/sandevgo/sorcerer/internal/core"
	"github.com/sandevgo/sorcerer/pkg/log"
)

const keyPrefix = "fp/"

type Config struct {
	Path     string
	InMemory bool
	// Zero keeps entries until removed externally.
	TTL time.Duration
	// Zero disables value log GC.
	GCInterval time.Duration
}

func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		GCInterval: 10 * time.Minute,
	}
}

func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// CacheStore keeps CacheEntry values keyed by fingerprint.
type CacheStore struct {
	db  *badger.DB
	ttl time.Duration

	stop chan struct{}
	done chan struct{}
}

func Open(ctx context.Context, cfg Config) (*CacheStore, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errors.New("path is required for persistent cache")
		}
		if err := os.MkdirAll(cfg.Path, 0750); err != nil {
			return nil, fmt.Errorf("failed to create cache directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithLogger(log.NewBadgerLoggerFromCtx(ctx))

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger cache: %w", err)
	}

	s := &CacheStore{db: db, ttl: cfg.TTL}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.stop = make(chan struct{})
		s.done = make(chan struct{})
		go s.runGC(ctx, cfg.GCInterval)
	}
	return s, nil
}

func key(fingerprint string) []byte {
	return []byte(keyPrefix + fingerprint)
}

// Get returns (nil, false, nil) for an unknown fingerprint.
func (s *CacheStore) Get(ctx context.Context, fingerprint string) (*core.CacheEntry, bool, error) {
	var entry core.CacheEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(fingerprint))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return &entry, true, nil
}

// Put overwrites any previous entry for the fingerprint.
func (s *CacheStore) Put(ctx context.Context, entry core.CacheEntry) error {
	if entry.Fingerprint == "" {
		return errors.New("cache entry has no fingerprint")
	}
	val, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(key(entry.Fingerprint), val)
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

func (s *CacheStore) runGC(ctx context.Context, interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			err := s.db.RunValueLogGC(0.5)
			if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.FromCtx(ctx).Warn().Err(err).Msg("badger value log GC failed")
			}
		}
	}
}

func (s *CacheStore) Close() error {
	if s.stop != nil {
		close(s.stop)
		<-s.done
	}
	return s.db.Close()
}
