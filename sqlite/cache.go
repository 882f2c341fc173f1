package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/lorekeep"
)

// Compile-time interface verification.
var _ lorekeep.CacheService = (*CacheService)(nil)

// CacheService implements lorekeep.CacheService using SQLite.
type CacheService struct {
	db     *DB
	now    func() time.Time
	logger *slog.Logger
}

// CacheOption configures a CacheService.
type CacheOption func(*CacheService)

// WithNow sets the clock used for entry timestamps and expiration.
func WithNow(now func() time.Time) CacheOption {
	return func(s *CacheService) {
		s.now = now
	}
}

// WithLogger sets the logger for sweep and decode diagnostics.
// Defaults to discarding all output.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(s *CacheService) {
		s.logger = logger
	}
}

// NewCacheService creates a new CacheService.
func NewCacheService(db *DB, opts ...CacheOption) *CacheService {
	s := &CacheService{
		db:     db,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get sweeps expired entries, then decodes the entry for tool and params into v.
func (s *CacheService) Get(ctx context.Context, tool string, params lorekeep.Params, maxAge time.Duration, v any) (bool, error) {
	if _, err := s.Sweep(ctx); err != nil {
		return false, err
	}

	key, err := lorekeep.CacheKey(tool, params)
	if err != nil {
		return false, err
	}

	query := "SELECT data FROM cache WHERE key = ?"
	args := []any{key}
	if maxAge > 0 {
		query += " AND created_at >= ?"
		args = append(args, s.now().Unix()-int64(maxAge/time.Second))
	}

	var data string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal([]byte(data), v); err != nil {
		s.logger.Debug("failed to decode cached data",
			"tool", tool,
			"key", key,
			"err", err,
		)
		return false, nil
	}

	return true, nil
}

// Set stores v for tool and params, replacing the timestamp and payload of
// any existing entry.
func (s *CacheService) Set(ctx context.Context, tool string, params lorekeep.Params, v any) error {
	key, err := lorekeep.CacheKey(tool, params)
	if err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return lorekeep.Errorf(lorekeep.EINVALID, "value not serializable: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cache (key, created_at, data)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			created_at = excluded.created_at,
			data = excluded.data
	`, key, s.now().Unix(), string(data))
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Sweep deletes entries older than lorekeep.DefaultRetention.
func (s *CacheService) Sweep(ctx context.Context) (int64, error) {
	cutoff := s.now().Unix() - int64(lorekeep.DefaultRetention/time.Second)

	result, err := s.db.ExecContext(ctx, "DELETE FROM cache WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep cache: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		s.logger.Debug("cache cleanup ran", "deleted", deleted)
	}

	return deleted, nil
}

// Reset deletes every entry.
func (s *CacheService) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM cache"); err != nil {
		return fmt.Errorf("failed to reset cache: %w", err)
	}
	return nil
}
