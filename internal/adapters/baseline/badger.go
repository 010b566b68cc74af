package baseline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/okian/wordlebench/internal/domain/perf"
	"github.com/okian/wordlebench/pkg/logger"
	"github.com/okian/wordlebench/pkg/metrics"
)

const badgerPrefix = "baseline/"

// BadgerStore keeps baselines in an embedded BadgerDB.
type BadgerStore struct {
	db   *badger.DB
	opts *options
}

// NewBadgerStore opens (or creates) a BadgerDB at dir. With WithInMemory
// dir is ignored and nothing touches disk.
func NewBadgerStore(dir string, opts ...Option) (*BadgerStore, error) {
	o := newOptions(opts)

	var bopts badger.Options
	if o.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if dir == "" {
			return nil, fmt.Errorf("baseline directory is required")
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return nil, fmt.Errorf("create baseline directory %s: %w", dir, err)
		}
		bopts = badger.DefaultOptions(dir).WithSyncWrites(true)
	}
	bopts = bopts.WithNumVersionsToKeep(1).WithLogger(nil)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}
	return &BadgerStore{db: db, opts: o}, nil
}

func badgerKey(key Key) []byte { return []byte(badgerPrefix + key.String()) }

// Save implements Store.
func (s *BadgerStore) Save(ctx context.Context, key Key, rec *perf.Record, force bool) (err error) {
	defer func() { metrics.RecordBaselineOperation(BackendBadger, "save", err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := key.Validate(); err != nil {
		return err
	}
	data, err := encode(key, rec, s.opts.now())
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		if !force {
			_, err := txn.Get(badgerKey(key))
			if err == nil {
				return fmt.Errorf("%w: %s", ErrBaselineExists, key)
			}
			if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}
		}
		return txn.Set(badgerKey(key), data)
	})
	if err != nil {
		return err
	}

	s.opts.logger.Info(ctx, "baseline saved",
		logger.String("key", key.String()),
		logger.String("backend", BackendBadger),
		logger.Bool("force", force),
	)
	return nil
}

// Load implements Store.
func (s *BadgerStore) Load(ctx context.Context, key Key) (rec *perf.Record, err error) {
	defer func() { metrics.RecordBaselineOperation(BackendBadger, "load", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}

	var data []byte
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrBaselineNotFound, key)
		}
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return decode(key, data)
}

// List implements Store.
func (s *BadgerStore) List(ctx context.Context) ([]Key, error) {
	var keys []Key
	prefix := []byte(badgerPrefix)
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			k, err := ParseKey(string(it.Item().Key()[len(prefix):]))
			if err != nil {
				continue
			}
			keys = append(keys, k)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}
	return keys, nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
