package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure-Go embeddable SQLite driver
)

// schema is the single generic key/value table backing every family. The
// family column plays the role of the byte-literal prefix spec §6
// describes ("engram:", "connection:", ...); storing it as its own
// indexed column lets List do an indexed equality scan instead of a
// byte-prefix range scan, while remaining functionally identical.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
	family TEXT NOT NULL,
	id     TEXT NOT NULL,
	value  BLOB NOT NULL,
	PRIMARY KEY (family, id)
);
CREATE INDEX IF NOT EXISTS idx_kv_family ON kv(family);
`

// Store is the embeddable, single-writer, directory-resident key/value
// store. It partitions keys into six families and supports atomic
// multi-entity write batches via Batch. A Store is safe for concurrent
// readers; see Batch for the single-writer contract.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens a Store rooted at dir. dir is created if it does
// not exist. The directory holds a single SQLite database file plus its
// WAL/SHM siblings; no other files are required.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty store directory", ErrInvalidInput)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating store directory: %v", ErrStorageFailure, err)
	}

	dbPath := filepath.Join(dir, "engramdb.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", ErrStorageFailure, err)
	}

	// SQLite supports a single writer; one open connection serialises
	// writes within this process and avoids SQLITE_BUSY. WAL mode lets
	// readers proceed without blocking the writer (spec §5).
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", ErrStorageFailure, err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: setting busy timeout: %v", ErrStorageFailure, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: creating schema: %v", ErrStorageFailure, err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Compact performs a best-effort reclamation of unused disk space. It has
// no semantic effect on the entities the store holds.
func (s *Store) Compact(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("%w: compacting store: %v", ErrStorageFailure, err)
	}
	return nil
}

// Put serializes entity to canonical JSON and writes it under (family, id),
// replacing any prior value.
func (s *Store) Put(ctx context.Context, family Family, id string, entity interface{}) error {
	if !family.valid() {
		return fmt.Errorf("%w: unknown family %q", ErrInvalidInput, family)
	}
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidInput)
	}
	value, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("%w: encoding %s/%s: %v", ErrSerialization, family, id, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv(family, id, value) VALUES (?, ?, ?)
		 ON CONFLICT(family, id) DO UPDATE SET value = excluded.value`,
		string(family), id, value)
	if err != nil {
		return fmt.Errorf("%w: writing %s/%s: %v", ErrStorageFailure, family, id, err)
	}
	return nil
}

// Get looks up (family, id) and, if present, decodes its JSON value into
// out. The second return value reports whether the entity was found;
// NotFound is represented by (false, nil), never as an error, per spec §4.B.
func (s *Store) Get(ctx context.Context, family Family, id string, out interface{}) (bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE family = ? AND id = ?`, string(family), id).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: reading %s/%s: %v", ErrStorageFailure, family, id, err)
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(value, out); err != nil {
		log.Printf("storage: skipping corrupt record %s/%s: %v", family, id, err)
		return false, fmt.Errorf("%w: decoding %s/%s: %v", ErrSerialization, family, id, err)
	}
	return true, nil
}

// Delete removes (family, id). Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, family Family, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE family = ? AND id = ?`, string(family), id)
	if err != nil {
		return fmt.Errorf("%w: deleting %s/%s: %v", ErrStorageFailure, family, id, err)
	}
	return nil
}

// List returns every id stored under family, in forward (ascending) order.
func (s *Store) List(ctx context.Context, family Family) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM kv WHERE family = ? ORDER BY id ASC`, string(family))
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", ErrStorageFailure, family, err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: scanning %s: %v", ErrStorageFailure, family, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// connIndexKey is the metadata-family key for the per-engram connection
// acceleration index that spec §9's design notes permit as an addition
// to the linear scan: "engram_id -> set<connection_id>".
func connIndexKey(engramID string) string {
	return "connidx:" + engramID
}

// FindConnectionsForEngram returns every connection id whose source or
// target equals engramID. It consults the metadata-family acceleration
// index maintained alongside connection writes (see Store.PutConnection /
// Store.DeleteConnection); if the index entry is absent (e.g. a store
// written before the index existed) it falls back to the linear family
// scan spec §4.B describes as the reference behaviour.
func (s *Store) FindConnectionsForEngram(ctx context.Context, engramID string) ([]string, error) {
	var ids []string
	found, err := s.Get(ctx, FamilyMetadata, connIndexKey(engramID), &ids)
	if err != nil {
		return nil, err
	}
	if found {
		return ids, nil
	}
	return s.scanConnectionsForEngram(ctx, engramID)
}

// scanConnectionsForEngram is the unconditional linear fallback: it scans
// every connection body and tests its endpoints.
func (s *Store) scanConnectionsForEngram(ctx context.Context, engramID string) ([]string, error) {
	connIDs, err := s.List(ctx, FamilyConnection)
	if err != nil {
		return nil, err
	}

	var result []string
	for _, id := range connIDs {
		var raw struct {
			SourceID string `json:"source_id"`
			TargetID string `json:"target_id"`
		}
		found, err := s.Get(ctx, FamilyConnection, id, &raw)
		if err != nil {
			log.Printf("storage: skipping corrupt connection %s during scan: %v", id, err)
			continue
		}
		if !found {
			continue
		}
		if raw.SourceID == engramID || raw.TargetID == engramID {
			result = append(result, id)
		}
	}
	return result, nil
}
