// Package baseline persists performance records for later comparison.
package baseline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/okian/wordlebench/internal/domain/perf"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// DefaultTag is used when a key is given without a tag.
const DefaultTag = "latest"

const keySeparator = "@"

// Key addresses a baseline by strategy name and tag.
type Key struct {
	Strategy string
	Tag      string
}

func (k Key) String() string { return k.Strategy + keySeparator + k.Tag }

// Validate checks that the key is usable as a file name and a badger key.
func (k Key) Validate() error {
	for _, part := range []string{k.Strategy, k.Tag} {
		if part == "" || strings.HasPrefix(part, ".") || strings.ContainsAny(part, `/\@`) {
			return fmt.Errorf("%w: %q", ErrInvalidKey, k.String())
		}
	}
	return nil
}

// ParseKey parses "strategy@tag"; a missing tag means DefaultTag.
func ParseKey(s string) (Key, error) {
	name, tag, found := strings.Cut(s, keySeparator)
	if !found {
		tag = DefaultTag
	}
	k := Key{Strategy: name, Tag: tag}
	if err := k.Validate(); err != nil {
		return Key{}, err
	}
	return k, nil
}

// Store reads and writes baselines. Implementations are safe for
// concurrent use.
type Store interface {
	// Save persists rec under key. Without force an existing baseline is
	// left untouched and ErrBaselineExists is returned.
	Save(ctx context.Context, key Key, rec *perf.Record, force bool) error
	// Load returns the baseline stored under key.
	Load(ctx context.Context, key Key) (*perf.Record, error)
	// List returns every stored key in lexical order.
	List(ctx context.Context) ([]Key, error)
	Close() error
}

// Open creates a store for the named backend rooted at dir.
func Open(backend, dir string, opts ...Option) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir, opts...)
	case BackendBadger:
		return NewBadgerStore(dir, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// envelope is the on-disk layout shared by every backend.
type envelope struct {
	FormatVersion int          `json:"format_version"`
	Key           string       `json:"key"`
	SavedAt       time.Time    `json:"saved_at"`
	Record        *perf.Record `json:"record"`
}

func encode(key Key, rec *perf.Record, now time.Time) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", ErrBaselineFormat)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBaselineFormat, err)
	}
	return json.MarshalIndent(envelope{
		FormatVersion: perf.FormatVersion,
		Key:           key.String(),
		SavedAt:       now.UTC(),
		Record:        rec,
	}, "", "  ")
}

func decode(key Key, data []byte) (*perf.Record, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBaselineFormat, key, err)
	}
	if env.FormatVersion != perf.FormatVersion {
		return nil, fmt.Errorf("%w: %s: format version %d, want %d",
			ErrBaselineFormat, key, env.FormatVersion, perf.FormatVersion)
	}
	if env.Record == nil {
		return nil, fmt.Errorf("%w: %s: missing record", ErrBaselineFormat, key)
	}
	if err := env.Record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBaselineFormat, key, err)
	}
	return env.Record, nil
}
