package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/eduplay/internal/logger"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// Backend persists store values in the kv table, one row per key.
type Backend struct {
	db  *sql.DB
	now func() time.Time
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{db: db, now: time.Now}
}

func (b *Backend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_backend")

	query, args, err := sqlBuilder.Select("value").From("kv").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return nil, false, err
	}

	var value string
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Error("failed to load key %s: %v", key, err)
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	log := logger.FromContext(ctx).WithPrefix("kv_backend")

	query, args, err := sqlBuilder.Insert("kv").
		Columns("key", "value", "updated_at").
		Values(key, string(data), b.now().UTC()).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save key %s: %v", key, err)
		return err
	}
	log.Debug("saved key %s", key)
	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	log := logger.FromContext(ctx).WithPrefix("kv_backend")

	query, args, err := sqlBuilder.Delete("kv").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return err
	}
	if _, err := b.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func (b *Backend) Keys(ctx context.Context) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("kv_backend")

	query, args, err := sqlBuilder.Select("key").From("kv").OrderBy("key ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// UpdatedAt returns when key was last written.
func (b *Backend) UpdatedAt(ctx context.Context, key string) (time.Time, bool, error) {
	query, args, err := sqlBuilder.Select("updated_at").From("kv").Where(squirrel.Eq{"key": key}).ToSql()
	if err != nil {
		return time.Time{}, false, err
	}

	var t time.Time
	err = b.db.QueryRowContext(ctx, query, args...).Scan(&t)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}
