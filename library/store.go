package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store groups one collection per entity type inside a single SQLite file.
// Each collection is a two-column table (id TEXT PRIMARY KEY, data TEXT)
// holding the JSON-encoded record, the Go analog of a browser object store:
// key-based access plus full-collection scans, nothing relational.
type Store struct {
	db  *sql.DB
	hub *watchHub

	Books         *Collection[Book]
	Users         *Collection[User]
	Borrowings    *Collection[Borrowing]
	Fines         *Collection[Fine]
	Reservations  *Collection[Reservation]
	Notifications *Collection[Notification]
	Activities    *Collection[Activity]
	SettingsRows  *Collection[Settings]
	Profiles      *Collection[ProfileDetails]
	Credentials   *Collection[Credential]
	Sessions      *Collection[Session]
}

const schemaVersion = 1

var collectionNames = []string{
	"books", "users", "borrowings", "fines", "reservations",
	"notifications", "activities", "settings", "profiles",
	"credentials", "sessions",
}

// OpenStore opens (or creates) the SQLite database at dbPath and applies
// the schema. A single schema version, no migration path.
func OpenStore(dbPath string) (*Store, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, hub: newWatchHub()}
	s.Books = newCollection[Book](s, "books")
	s.Users = newCollection[User](s, "users")
	s.Borrowings = newCollection[Borrowing](s, "borrowings")
	s.Fines = newCollection[Fine](s, "fines")
	s.Reservations = newCollection[Reservation](s, "reservations")
	s.Notifications = newCollection[Notification](s, "notifications")
	s.Activities = newCollection[Activity](s, "activities")
	s.SettingsRows = newCollection[Settings](s, "settings")
	s.Profiles = newCollection[ProfileDetails](s, "profiles")
	s.Credentials = newCollection[Credential](s, "credentials")
	s.Sessions = newCollection[Session](s, "sessions")
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func applySchema(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, name := range collectionNames {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
            id TEXT PRIMARY KEY,
            data TEXT NOT NULL
        );`, name)
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('schema_version',?)
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`, schemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}

// Record is anything a collection can hold: a struct that knows its key.
type Record interface {
	RecordID() string
}

// Collection provides key-based access to one entity table.
type Collection[T Record] struct {
	store *Store
	name  string
}

func newCollection[T Record](s *Store, name string) *Collection[T] {
	return &Collection[T]{store: s, name: name}
}

// Name returns the collection's table name.
func (c *Collection[T]) Name() string { return c.name }

// Add inserts a record and fails with ErrDuplicateKey if the key exists.
// Callers pre-assign keys; the store never generates them.
func (c *Collection[T]) Add(rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	_, err = c.store.db.Exec(
		fmt.Sprintf(`INSERT INTO %s(id,data) VALUES(?,?)`, c.name),
		rec.RecordID(), string(data),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s %q: %w", c.name, rec.RecordID(), ErrDuplicateKey)
		}
		return fmt.Errorf("add to %s: %w", c.name, err)
	}
	c.store.hub.notify(c.name)
	return nil
}

// Put upserts by key. The stored record is replaced entirely; fields absent
// from rec do not survive from a previous version.
func (c *Collection[T]) Put(rec T) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.name, err)
	}
	_, err = c.store.db.Exec(
		fmt.Sprintf(`INSERT INTO %s(id,data) VALUES(?,?)
            ON CONFLICT(id) DO UPDATE SET data=excluded.data`, c.name),
		rec.RecordID(), string(data),
	)
	if err != nil {
		return fmt.Errorf("put to %s: %w", c.name, err)
	}
	c.store.hub.notify(c.name)
	return nil
}

// Get fetches a single record by key.
func (c *Collection[T]) Get(id string) (T, error) {
	var zero T
	var data string
	err := c.store.db.QueryRow(
		fmt.Sprintf(`SELECT data FROM %s WHERE id=?`, c.name), id,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return zero, fmt.Errorf("%s %q: %w", c.name, id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("get from %s: %w", c.name, err)
	}
	var rec T
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return zero, fmt.Errorf("decode %s %q: %w", c.name, id, err)
	}
	return rec, nil
}

// Delete removes a record by key. Deleting an absent key is a no-op, and
// deletes never cascade to dependent collections.
func (c *Collection[T]) Delete(id string) error {
	res, err := c.store.db.Exec(
		fmt.Sprintf(`DELETE FROM %s WHERE id=?`, c.name), id,
	)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", c.name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		c.store.hub.notify(c.name)
	}
	return nil
}

// All returns a full scan of the collection. Row order is whatever the
// engine yields; callers sort explicitly.
func (c *Collection[T]) All() ([]T, error) {
	rows, err := c.store.db.Query(fmt.Sprintf(`SELECT data FROM %s`, c.name))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", c.name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// BulkAdd inserts all records in one transaction. All-or-nothing: a
// duplicate key anywhere in the batch inserts nothing.
func (c *Collection[T]) BulkAdd(recs []T) error {
	if len(recs) == 0 {
		return nil
	}
	tx, err := c.store.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %s(id,data) VALUES(?,?)`, c.name))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, rec := range recs {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s: %w", c.name, err)
		}
		if _, err := stmt.Exec(rec.RecordID(), string(data)); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%s %q: %w", c.name, rec.RecordID(), ErrDuplicateKey)
			}
			return fmt.Errorf("bulk add to %s: %w", c.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	c.store.hub.notify(c.name)
	return nil
}

// Count returns the number of records in the collection.
func (c *Collection[T]) Count() (int, error) {
	var n int
	err := c.store.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, c.name)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
