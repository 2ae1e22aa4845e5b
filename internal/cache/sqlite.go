package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"saju-match/internal/model"
)

// SQLiteStore keeps entries in saju_table, one row per solar date.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS saju_table (
		solar_date  TEXT PRIMARY KEY,
		year_ganji  TEXT NOT NULL,
		month_ganji TEXT NOT NULL,
		day_ganji   TEXT NOT NULL,
		vector      TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);`)
	return err
}

func (s *SQLiteStore) Get(ctx context.Context, date string) (Entry, bool, error) {
	if err := validKey(date); err != nil {
		return Entry{}, false, err
	}
	var vector, dayCode, createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT vector, day_ganji, created_at FROM saju_table WHERE solar_date = ?`, date,
	).Scan(&vector, &dayCode, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}

	var v model.SajuVector
	if err := decodeVector(vector, &v); err != nil || !v.Valid() {
		return Entry{}, false, fmt.Errorf("%w: %s: bad vector %q", ErrMalformed, date, vector)
	}
	ts, _ := time.Parse(time.RFC3339, createdAt)
	return Entry{Date: date, Vector: v, DayCode: dayCode, CreatedAt: ts}, true, nil
}

func (s *SQLiteStore) Put(ctx context.Context, e Entry) error {
	if err := validKey(e.Date); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	v := e.Vector
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO saju_table (solar_date, year_ganji, month_ganji, day_ganji, vector, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Date,
		model.Pillar(v.YearStem, v.YearBranch),
		model.Pillar(v.MonthStem, v.MonthBranch),
		e.DayCode,
		encodeVector(v),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheWrite, err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeVector(v model.SajuVector) string {
	n := v.Ints()
	return fmt.Sprintf("%d,%d,%d,%d,%d,%d", n[0], n[1], n[2], n[3], n[4], n[5])
}

func decodeVector(s string, v *model.SajuVector) error {
	var n [6]int
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d,%d,%d", &n[0], &n[1], &n[2], &n[3], &n[4], &n[5]); err != nil {
		return err
	}
	*v = model.SajuVector{
		YearStem: model.Stem(n[0]), YearBranch: model.Branch(n[1]),
		MonthStem: model.Stem(n[2]), MonthBranch: model.Branch(n[3]),
		DayStem: model.Stem(n[4]), DayBranch: model.Branch(n[5]),
	}
	return nil
}
