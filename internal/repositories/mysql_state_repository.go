package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "envy/internal/db"
	"envy/internal/store"
)

const appStateTable = "app_state"

const appStateDDL = `
CREATE TABLE IF NOT EXISTS app_state (
	storage_key VARCHAR(191) NOT NULL PRIMARY KEY,
	payload LONGTEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQLStateRepository stores the aggregate as one row of app_state keyed by storage key.
type MySQLStateRepository struct {
	DB  *sql.DB
	Key string
}

func NewMySQLStateRepository(db *sql.DB, key string) MySQLStateRepository {
	if key == "" {
		key = store.DefaultStorageKey
	}
	return MySQLStateRepository{DB: db, Key: key}
}

// EnsureSchema creates app_state when it is missing and backfills updated_at on tables
// created before the column existed.
func (r MySQLStateRepository) EnsureSchema(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("mysql: no database handle")
	}
	if err := intdb.EnsureTable(ctx, r.DB, appStateTable, appStateDDL); err != nil {
		return err
	}
	return intdb.EnsureColumn(ctx, r.DB, appStateTable, "updated_at",
		"DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP")
}

func (r MySQLStateRepository) Load(ctx context.Context) ([]byte, error) {
	if r.DB == nil {
		return nil, errors.New("mysql: no database handle")
	}
	var payload sql.NullString
	err := r.DB.QueryRowContext(ctx,
		`SELECT payload FROM `+appStateTable+` WHERE storage_key = ? LIMIT 1`, r.Key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNoState
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Key, err)
	}
	if !payload.Valid {
		return nil, store.ErrNoState
	}
	return []byte(payload.String), nil
}

func (r MySQLStateRepository) Save(ctx context.Context, raw []byte) error {
	if r.DB == nil {
		return errors.New("mysql: no database handle")
	}
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO `+appStateTable+` (storage_key, payload)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), updated_at = CURRENT_TIMESTAMP`,
		r.Key, string(raw))
	if err != nil {
		return fmt.Errorf("save %s: %w", r.Key, err)
	}
	return nil
}

func (r MySQLStateRepository) Clear(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("mysql: no database handle")
	}
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM `+appStateTable+` WHERE storage_key = ?`, r.Key); err != nil {
		return fmt.Errorf("clear %s: %w", r.Key, err)
	}
	return nil
}

func (r MySQLStateRepository) Driver() string { return "mysql" }

// Ping reports whether the backing database is reachable and app_state exists.
func (r MySQLStateRepository) Ping(ctx context.Context) error {
	if r.DB == nil {
		return errors.New("mysql: no database handle")
	}
	if err := r.DB.PingContext(ctx); err != nil {
		return err
	}
	if !intdb.HasTable(ctx, r.DB, appStateTable) {
		return fmt.Errorf("table %s not found", appStateTable)
	}
	return nil
}
