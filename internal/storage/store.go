package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"chantd/internal/providers"
	"chantd/internal/structures"
)

// Four partitions: settings (obfuscated JSON key/value), stats (one row per
// local calendar date), logs (reserved, no consumer yet), audio (blobs).
const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS stats (
	date TEXT PRIMARY KEY,
	count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS logs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	level TEXT NOT NULL,
	message TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audio (
	id TEXT PRIMARY KEY,
	data BLOB NOT NULL
);
`

type StoreInterface interface {
	GetSetting(ctx context.Context, key string, def any) (any, error)
	SetSetting(ctx context.Context, key string, value any) error
	GetSettingJSON(ctx context.Context, key string, out any) (bool, error)
	ResetSettings(ctx context.Context) error
	SaveDailyStat(ctx context.Context, date string, count int) error
	GetAllDailyStats(ctx context.Context) (map[string]int, error)
	SaveAudio(ctx context.Context, id string, data []byte) error
	GetAudio(ctx context.Context, id string) ([]byte, error)
	DeleteAudio(ctx context.Context, id string) error
	Close() error
}

type Store struct {
	db     *sqlx.DB
	logger providers.Logger
}

func NewStore(conf *structures.Config, logger providers.Logger) (StoreInterface, error) {
	return Open(conf.Storage.Path, logger)
}

// Open connects to the database file, creating the directory and schema as
// needed. Schema creation is idempotent; re-opening an initialized store is
// a no-op for existing partitions.
func Open(path string, logger providers.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single writer; sqlite serializes same-partition transactions anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	logger.Infof(providers.TypeApp, "Storage opened at %s", path)
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetSetting returns the value stored under key, or def when the key is
// absent or holds JSON null. Absence is not an error. Rows that predate the
// codec come back as their raw stored string.
func (s *Store) GetSetting(ctx context.Context, key string, def any) (any, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return def, nil
	}
	if err != nil {
		return def, err
	}

	decoded, ok := decodeValue(raw)
	if !ok {
		return raw, nil
	}

	var val any
	if err := json.Unmarshal(decoded, &val); err != nil {
		return raw, nil
	}
	if val == nil {
		return def, nil
	}
	return val, nil
}

// GetSettingJSON unmarshals the stored value into out. Returns false when
// the key is missing or the stored value is not usable JSON.
func (s *Store) GetSettingJSON(ctx context.Context, key string, out any) (bool, error) {
	var raw string
	err := s.db.GetContext(ctx, &raw, `SELECT value FROM settings WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	decoded, ok := decodeValue(raw)
	if !ok {
		decoded = []byte(raw)
	}
	if err := json.Unmarshal(decoded, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SetSetting durably stores value under key, last write wins.
func (s *Store) SetSetting(ctx context.Context, key string, value any) error {
	enc, err := encodeValue(value)
	if err != nil {
		return fmt.Errorf("encode setting %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, enc)
	return err
}

// ResetSettings clears the whole settings namespace. Only triggered by an
// explicit user reset; nothing expires on its own.
func (s *Store) ResetSettings(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM settings`)
	return err
}

func (s *Store) SaveDailyStat(ctx context.Context, date string, count int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stats (date, count) VALUES (?, ?)
		 ON CONFLICT(date) DO UPDATE SET count = excluded.count`,
		date, count)
	return err
}

func (s *Store) GetAllDailyStats(ctx context.Context) (map[string]int, error) {
	rows := []struct {
		Date  string `db:"date"`
		Count int    `db:"count"`
	}{}
	if err := s.db.SelectContext(ctx, &rows, `SELECT date, count FROM stats`); err != nil {
		return nil, err
	}
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Date] = r.Count
	}
	return out, nil
}

func (s *Store) SaveAudio(ctx context.Context, id string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO audio (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		id, data)
	return err
}

// GetAudio returns nil without error when no blob exists for id.
func (s *Store) GetAudio(ctx context.Context, id string) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, `SELECT data FROM audio WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *Store) DeleteAudio(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM audio WHERE id = ?`, id)
	return err
}
