package baseline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/okian/wordlebench/internal/domain/perf"
	"github.com/okian/wordlebench/pkg/logger"
	"github.com/okian/wordlebench/pkg/metrics"
)

const (
	fileExt  = ".json"
	dirPerm  = 0o750
	filePerm = 0o640
)

// FileStore keeps one JSON document per baseline in a directory.
type FileStore struct {
	dir  string
	opts *options
}

// NewFileStore creates dir if needed and returns a store rooted there.
func NewFileStore(dir string, opts ...Option) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("baseline directory is required")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create baseline directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, opts: newOptions(opts)}, nil
}

func (s *FileStore) path(key Key) string {
	return filepath.Join(s.dir, key.String()+fileExt)
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, key Key, rec *perf.Record, force bool) (err error) {
	defer func() { metrics.RecordBaselineOperation(BackendFile, "save", err) }()

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

	path := s.path(key)
	if !force {
		if err := writeExclusive(path, data); err != nil {
			if errors.Is(err, fs.ErrExist) {
				return fmt.Errorf("%w: %s", ErrBaselineExists, key)
			}
			return fmt.Errorf("write baseline %s: %w", key, err)
		}
	} else if err := writeAtomic(path, data); err != nil {
		return fmt.Errorf("write baseline %s: %w", key, err)
	}

	s.opts.logger.Info(ctx, "baseline saved",
		logger.String("key", key.String()),
		logger.String("path", path),
		logger.Bool("force", force),
	)
	return nil
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, key Key) (rec *perf.Record, err error) {
	defer func() { metrics.RecordBaselineOperation(BackendFile, "load", err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrBaselineNotFound, key)
		}
		return nil, fmt.Errorf("read baseline %s: %w", key, err)
	}
	return decode(key, data)
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]Key, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list baselines: %w", err)
	}

	var keys []Key
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		strategy, tag, ok := strings.Cut(strings.TrimSuffix(name, fileExt), keySeparator)
		if !ok {
			continue
		}
		k := Key{Strategy: strategy, Tag: tag}
		if k.Validate() == nil {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b Key) int { return strings.Compare(a.String(), b.String()) })
	return keys, nil
}

// Close implements Store.
func (s *FileStore) Close() error { return nil }

func writeExclusive(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".baseline-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
