package sandbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/airyra/trello/pkg/idgen"
)

// ErrNotFound is returned when no resource has the requested id.
var ErrNotFound = errors.New("resource not found")

// Document is one stored entity, a JSON object.
type Document map[string]any

// GetString returns the field as a string, or "" if it is missing or not a string.
func (d Document) GetString(key string) string {
	s, _ := d[key].(string)
	return s
}

// Strings returns the field as a list of strings. Non-string items are skipped.
func (d Document) Strings(key string) []string {
	list, _ := d[key].([]any)
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Filter restricts List to documents whose JSON path equals Value, or with
// Contains set, to documents whose array at Path holds Value.
type Filter struct {
	Path     string
	Value    string
	Contains bool
}

// Store keeps every collection's documents in one SQLite table.
type Store struct {
	db     *sql.DB
	mu     sync.Mutex
	closed bool
}

// NewStore creates a new SQLite-backed store.
// The dsn can be a file path or ":memory:" for in-memory database.
func NewStore(dsn string) (*Store, error) {
	connStr := dsn
	if !strings.Contains(dsn, "?") {
		connStr += "?"
	} else {
		connStr += "&"
	}
	connStr += "_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

// dbExecutor is an interface for database operations that works with both *sql.DB and *sql.Tx
type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Create stores doc in collection. An id is generated if doc has none.
func (s *Store) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	if doc.GetString("id") == "" {
		id, err := idgen.Generate()
		if err != nil {
			return nil, err
		}
		doc["id"] = id
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resources (collection, id, body) VALUES (?, ?, ?)`,
		collection, doc.GetString("id"), string(body),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert %s: %w", collection, err)
	}

	return doc, nil
}

// Get returns the document with id in collection.
func (s *Store) Get(ctx context.Context, collection, id string) (Document, error) {
	return get(ctx, s.db, collection, id)
}

// Update merges fields into the stored document and returns the result.
// Fields set to nil are stored as JSON null.
func (s *Store) Update(ctx context.Context, collection, id string, fields Document) (Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	doc, err := get(ctx, tx, collection, id)
	if err != nil {
		return nil, err
	}
	for k, v := range fields {
		doc[k] = v
	}
	doc["id"] = id

	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE resources SET body = ? WHERE collection = ? AND id = ?`,
		string(body), collection, id,
	); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", collection, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return doc, nil
}

// Delete removes the document with id from collection.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM resources WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns the documents of collection matching every filter, oldest first.
func (s *Store) List(ctx context.Context, collection string, filters ...Filter) ([]Document, error) {
	query := `SELECT body FROM resources WHERE collection = ?`
	args := []interface{}{collection}

	for _, f := range filters {
		if f.Contains {
			query += ` AND EXISTS (SELECT 1 FROM json_each(resources.body, ?) WHERE json_each.value = ?)`
		} else {
			query += ` AND json_extract(resources.body, ?) = ?`
		}
		args = append(args, f.Path, f.Value)
	}
	query += ` ORDER BY seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		doc, err := decodeDocument(body)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// First returns the oldest document of collection.
func (s *Store) First(ctx context.Context, collection string) (Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM resources WHERE collection = ? ORDER BY seq LIMIT 1`,
		collection,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return decodeDocument(body)
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func get(ctx context.Context, ex dbExecutor, collection, id string) (Document, error) {
	var body string
	err := ex.QueryRowContext(ctx,
		`SELECT body FROM resources WHERE collection = ? AND id = ?`,
		collection, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	return decodeDocument(body)
}

func decodeDocument(body string) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return doc, nil
}
