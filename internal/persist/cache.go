package persist

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"
)

// CacheFile is the SQLite file name inside the data directory.
const CacheFile = "progresspath.db"

// Cache is the local document store: named JSON documents plus a small
// key-value settings table, backed by SQLite.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (or creates) the cache database under dir.
func OpenCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, CacheFile))
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging cache db: %w", err)
	}
	return &Cache{db: db}, nil
}

// RunMigrations applies all pending migrations to the cache database under dir.
func RunMigrations(dir, migrationsPath string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir %s: %w", dir, err)
	}

	dsn := "sqlite://" + filepath.Join(dir, CacheFile)
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// GetDocument returns the stored content of a named document, or nil when the
// document has never been saved.
func (c *Cache) GetDocument(ctx context.Context, name string) ([]byte, error) {
	var content []byte
	err := c.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE name = ?`, name,
	).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document %q: %w", name, err)
	}
	return content, nil
}

// PutDocument stores (or replaces) a named document.
func (c *Cache) PutDocument(ctx context.Context, name string, content []byte) error {
	_, err := c.db.ExecContext(ctx,
		`INSERT INTO documents (name, content, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET content = excluded.content, updated_at = CURRENT_TIMESTAMP`,
		name, content)
	if err != nil {
		return fmt.Errorf("writing document %q: %w", name, err)
	}
	return nil
}

// GetSetting returns the value of a settings key, or "" when unset.
func (c *Cache) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := c.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a settings key. An empty value deletes the key.
func (c *Cache) SetSetting(ctx context.Context, key, value string) error {
	var err error
	if value == "" {
		_, err = c.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key)
	} else {
		_, err = c.db.ExecContext(ctx,
			`INSERT INTO settings (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value)
	}
	if err != nil {
		return fmt.Errorf("writing setting %q: %w", key, err)
	}
	return nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}
