package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/docquery/docquery/internal/adapters/driven/cache/sqlite/migrations"
	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CacheStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.CacheStore.
// Connections are opened per operation; the blob is touched once at load
// and at most once at save during a process lifetime.
type Store struct {
	path string
}

// NewStore creates a cache store persisting to the given file path.
// The parent directory is created on save, not here.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the cache blob file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads and validates the persisted (fingerprint, chunk-list) pair.
// A missing file yields domain.ErrNotFound; anything else that goes wrong
// wraps domain.ErrCacheInvalid so the loader deletes the blob.
func (s *Store) Load(ctx context.Context) (domain.Fingerprint, []domain.Chunk, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil, domain.ErrNotFound
	}

	db, err := s.open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: opening blob: %w", domain.ErrCacheInvalid, err)
	}
	defer db.Close()

	if err := s.validateShape(ctx, db); err != nil {
		return nil, nil, err
	}

	fp, err := s.loadFingerprint(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	chunks, err := s.loadChunks(ctx, db)
	if err != nil {
		return nil, nil, err
	}

	return fp, chunks, nil
}

// Save replaces the blob with the given pair. The old file is removed
// first: a save is a full overwrite, never a merge.
func (s *Store) Save(ctx context.Context, fp domain.Fingerprint, chunks []domain.Chunk) error {
	if err := s.Delete(); err != nil {
		return fmt.Errorf("removing previous blob: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := s.open()
	if err != nil {
		return fmt.Errorf("creating blob: %w", err)
	}
	defer db.Close()

	if err := migrate(ctx, db); err != nil {
		return fmt.Errorf("initialising schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meta (id, generation) VALUES (1, ?)", uuid.New().String()); err != nil {
		return fmt.Errorf("writing meta: %w", err)
	}

	for filename, mtime := range fp {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO fingerprint (filename, mtime_ns) VALUES (?, ?)", filename, mtime); err != nil {
			return fmt.Errorf("writing fingerprint for %s: %w", filename, err)
		}
	}

	for i := range chunks {
		var blob any // NULL marks an absent embedding; a zero vector stays a blob.
		if chunks[i].Embedding.Present() {
			blob = float32SliceToBytes(chunks[i].Embedding.Values())
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO chunks (position, filename, heading, level, content, source_url, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, chunks[i].Filename, chunks[i].Heading, chunks[i].Level,
			chunks[i].Content, chunks[i].SourceURL, blob); err != nil {
			return fmt.Errorf("writing chunk %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Delete removes the blob file. A missing blob is not an error.
func (s *Store) Delete() error {
	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func (s *Store) open() (*sql.DB, error) {
	return sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)")
}

// validateShape checks the blob holds exactly the expected pair: the three
// tables and a single meta row.
func (s *Store) validateShape(ctx context.Context, db *sql.DB) error {
	var tables int
	row := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name IN ('meta', 'fingerprint', 'chunks')`)
	if err := row.Scan(&tables); err != nil {
		return fmt.Errorf("%w: reading schema: %w", domain.ErrCacheInvalid, err)
	}
	if tables != 3 {
		return fmt.Errorf("%w: unexpected schema (%d of 3 tables)", domain.ErrCacheInvalid, tables)
	}

	var metaRows int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM meta").Scan(&metaRows); err != nil {
		return fmt.Errorf("%w: reading meta: %w", domain.ErrCacheInvalid, err)
	}
	if metaRows != 1 {
		return fmt.Errorf("%w: expected one meta row, found %d", domain.ErrCacheInvalid, metaRows)
	}
	return nil
}

func (s *Store) loadFingerprint(ctx context.Context, db *sql.DB) (domain.Fingerprint, error) {
	rows, err := db.QueryContext(ctx, "SELECT filename, mtime_ns FROM fingerprint")
	if err != nil {
		return nil, fmt.Errorf("%w: reading fingerprint: %w", domain.ErrCacheInvalid, err)
	}
	defer rows.Close()

	fp := domain.Fingerprint{}
	for rows.Next() {
		var filename string
		var mtime int64
		if err := rows.Scan(&filename, &mtime); err != nil {
			return nil, fmt.Errorf("%w: scanning fingerprint: %w", domain.ErrCacheInvalid, err)
		}
		fp[filename] = mtime
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating fingerprint: %w", domain.ErrCacheInvalid, err)
	}
	return fp, nil
}

func (s *Store) loadChunks(ctx context.Context, db *sql.DB) ([]domain.Chunk, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT filename, heading, level, content, source_url, embedding
		FROM chunks ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: reading chunks: %w", domain.ErrCacheInvalid, err)
	}
	defer rows.Close()

	var chunks []domain.Chunk
	for rows.Next() {
		var c domain.Chunk
		var blob []byte
		if err := rows.Scan(&c.Filename, &c.Heading, &c.Level, &c.Content, &c.SourceURL, &blob); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %w", domain.ErrCacheInvalid, err)
		}
		if c.Level < 1 || c.Level > 4 || c.Content == "" {
			return nil, fmt.Errorf("%w: chunk %q has malformed fields", domain.ErrCacheInvalid, c.Heading)
		}
		if blob != nil {
			vec, err := bytesToFloat32Slice(blob)
			if err != nil {
				return nil, fmt.Errorf("%w: chunk %q embedding: %w", domain.ErrCacheInvalid, c.Heading, err)
			}
			c.Embedding = domain.NewEmbedding(vec)
		}
		chunks = append(chunks, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %w", domain.ErrCacheInvalid, err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: blob holds no chunks", domain.ErrCacheInvalid)
	}
	return chunks, nil
}

// migrate runs all embedded up-migrations against a fresh blob.
func migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`); err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for version, name := range upFiles {
		script, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO schema_migrations (version) VALUES (?)", version+1); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// float32SliceToBytes converts a vector to little-endian bytes for storage.
func float32SliceToBytes(floats []float32) []byte {
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a stored blob back to a vector.
func bytesToFloat32Slice(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("blob length %d not a multiple of 4", len(data))
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats, nil
}
