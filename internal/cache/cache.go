// Package cache persists computed day pillars keyed by solar date.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"saju-match/internal/config"
	"saju-match/internal/model"
)

var (
	// ErrCacheWrite marks a failed Put. Callers log it and carry on.
	ErrCacheWrite = errors.New("pillar cache write failed")
	// ErrMalformed marks a stored record that cannot be decoded. It is
	// reported alongside a miss.
	ErrMalformed = errors.New("malformed pillar cache record")
)

type Entry struct {
	Date      string           `json:"solar_date"`
	Vector    model.SajuVector `json:"vector"`
	DayCode   string           `json:"day_ganji"`
	CreatedAt time.Time        `json:"created_at"`
}

// Store is a write-once map from YYYY-MM-DD to Entry. Get reports ok=false
// for a missing record; a malformed record is a miss with ErrMalformed.
type Store interface {
	Get(ctx context.Context, date string) (Entry, bool, error)
	Put(ctx context.Context, e Entry) error
	Close() error
}

func Key(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func validKey(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil || len(date) != 10 {
		return fmt.Errorf("invalid cache key %q", date)
	}
	return nil
}

func encode(e Entry) ([]byte, error) {
	return json.Marshal(e)
}

func decode(date string, b []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		return Entry{}, fmt.Errorf("%w: %s: %v", ErrMalformed, date, err)
	}
	if e.Date != date || !e.Vector.Valid() {
		return Entry{}, fmt.Errorf("%w: %s: invalid content", ErrMalformed, date)
	}
	return e, nil
}

// New opens the backend named by cfg.Backend.
func New(cfg config.CacheConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		return NewFileStore(cfg.Dir)
	case "sqlite":
		return NewSQLiteStore(cfg.SQLitePath)
	case "redis":
		return NewRedisStore(cfg.Redis), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
