package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/pwcheck/internal/corpus"
)

// FileName is the name of the database file inside the store directory.
const FileName = "pwcheck.db"

// CorpusDB stores imported password corpora in SQLite.
type CorpusDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CorpusDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CorpusDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*CorpusDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CorpusDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Path returns the database file path.
func (cdb *CorpusDB) Path() string {
	return cdb.dbPath
}

// Close closes the database connection.
func (cdb *CorpusDB) Close() error {
	return cdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CorpusDB) createTables() error {
	schema := `
	-- One row per imported word list
	CREATE TABLE IF NOT EXISTS corpora (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		source_path TEXT NOT NULL,
		digest TEXT NOT NULL,
		encoding TEXT NOT NULL,
		entry_count INTEGER NOT NULL DEFAULT 0,
		line_count INTEGER NOT NULL DEFAULT 0,
		imported_at TEXT NOT NULL
	);

	-- Distinct decoded passwords per corpus
	CREATE TABLE IF NOT EXISTS corpus_entries (
		corpus_id INTEGER NOT NULL,
		password TEXT NOT NULL,
		PRIMARY KEY (corpus_id, password)
	) WITHOUT ROWID;
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// CorpusInfo describes an imported corpus.
type CorpusInfo struct {
	// ID is the unique identifier of the corpus in the database.
	ID int64

	// Name is the user-facing corpus name.
	Name string

	// SourcePath is the word list the corpus was imported from.
	SourcePath string

	// Digest is the hex BLAKE2b-256 digest of the source file at import time.
	Digest string

	// Encoding is the decoding used for the import.
	Encoding corpus.Encoding

	// Entries is the number of distinct passwords stored.
	Entries int

	// Lines is the number of lines read from the source file.
	Lines int

	// ImportedAt is when the corpus was imported.
	ImportedAt time.Time
}

// ImportResult is the outcome of ImportCorpus.
type ImportResult struct {
	// Info describes the stored corpus.
	Info *CorpusInfo

	// Skipped is true when the source was unchanged and nothing was re-imported.
	Skipped bool
}

// ImportOption configures ImportCorpus.
type ImportOption func(*importOptions)

type importOptions struct {
	force    bool
	loadOpts []corpus.LoadOption
}

// WithForce re-imports the corpus even when the source digest is unchanged.
func WithForce() ImportOption {
	return func(o *importOptions) {
		o.force = true
	}
}

// WithLoadOptions passes options, such as progress reporting, to the line scanner.
func WithLoadOptions(opts ...corpus.LoadOption) ImportOption {
	return func(o *importOptions) {
		o.loadOpts = append(o.loadOpts, opts...)
	}
}

// Digest returns the hex encoded BLAKE2b-256 digest of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided corpus path is intentional
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", fmt.Errorf("failed to create hash: %w", err)
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ImportCorpus decodes the word list at sourcePath and stores its distinct
// entries under name, replacing any previous corpus of the same name.
//
// If a corpus with the same name, digest and encoding already exists the
// call is a no-op and the result is marked Skipped. A missing source wraps
// corpus.ErrCorpusMissing; a source without entries wraps corpus.ErrCorpusEmpty
// and leaves the store untouched.
func (cdb *CorpusDB) ImportCorpus(ctx context.Context, name, sourcePath string, enc corpus.Encoding, opts ...ImportOption) (*ImportResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidCorpusName
	}

	var o importOptions
	for _, opt := range opts {
		opt(&o)
	}

	digest, err := Digest(sourcePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", corpus.ErrCorpusMissing, sourcePath)
		}
		return nil, fmt.Errorf("failed to digest corpus: %w", err)
	}

	existing, err := cdb.GetCorpus(ctx, name)
	if err != nil && !errors.Is(err, ErrCorpusNotFound) {
		return nil, err
	}
	if existing != nil && !o.force && existing.Digest == digest && existing.Encoding == enc {
		return &ImportResult{Info: existing, Skipped: true}, nil
	}

	f, err := os.Open(sourcePath) //nolint:gosec // User-provided corpus path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if existing != nil {
		if err := deleteCorpusTx(ctx, tx, existing.ID); err != nil {
			return nil, err
		}
	}

	importedAt := time.Now().UTC()
	res, err := tx.ExecContext(ctx, `
	INSERT INTO corpora (name, source_path, digest, encoding, imported_at)
	VALUES (?, ?, ?, ?, ?)
	`, name, sourcePath, digest, string(enc), importedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("failed to insert corpus: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get corpus id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT OR IGNORE INTO corpus_entries (corpus_id, password) VALUES (?, ?)")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare entry insert: %w", err)
	}
	defer stmt.Close()

	entries := 0
	loadOpts := append([]corpus.LoadOption{corpus.WithEncoding(enc)}, o.loadOpts...)
	lines, err := corpus.Scan(ctx, f, func(entry string) error {
		r, err := stmt.ExecContext(ctx, id, entry)
		if err != nil {
			return fmt.Errorf("failed to insert entry: %w", err)
		}
		if n, err := r.RowsAffected(); err == nil {
			entries += int(n)
		}
		return nil
	}, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to import corpus %s: %w", sourcePath, err)
	}
	if entries == 0 {
		return nil, fmt.Errorf("%w: %s", corpus.ErrCorpusEmpty, sourcePath)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE corpora SET entry_count = ?, line_count = ? WHERE id = ?",
		entries, lines, id); err != nil {
		return nil, fmt.Errorf("failed to update corpus counts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	return &ImportResult{
		Info: &CorpusInfo{
			ID:         id,
			Name:       name,
			SourcePath: sourcePath,
			Digest:     digest,
			Encoding:   enc,
			Entries:    entries,
			Lines:      lines,
			ImportedAt: importedAt,
		},
	}, nil
}

const corpusColumns = "id, name, source_path, digest, encoding, entry_count, line_count, imported_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCorpusInfo(row rowScanner) (*CorpusInfo, error) {
	var info CorpusInfo
	var enc, importedAt string
	if err := row.Scan(&info.ID, &info.Name, &info.SourcePath, &info.Digest,
		&enc, &info.Entries, &info.Lines, &importedAt); err != nil {
		return nil, err
	}
	info.Encoding = corpus.Encoding(enc)
	info.ImportedAt = parseTimestamp(importedAt)
	return &info, nil
}

// GetCorpus returns the corpus called name, or ErrCorpusNotFound.
func (cdb *CorpusDB) GetCorpus(ctx context.Context, name string) (*CorpusInfo, error) {
	row := cdb.db.QueryRowContext(ctx, "SELECT "+corpusColumns+" FROM corpora WHERE name = ?", name)
	info, err := scanCorpusInfo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCorpusNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get corpus: %w", err)
	}
	return info, nil
}

// ListCorpora returns every imported corpus ordered by name.
func (cdb *CorpusDB) ListCorpora(ctx context.Context) ([]*CorpusInfo, error) {
	rows, err := cdb.db.QueryContext(ctx, "SELECT "+corpusColumns+" FROM corpora ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list corpora: %w", err)
	}
	defer rows.Close()

	var corpora []*CorpusInfo
	for rows.Next() {
		info, err := scanCorpusInfo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corpus: %w", err)
		}
		corpora = append(corpora, info)
	}

	return corpora, rows.Err()
}

// DeleteCorpus removes the corpus called name and all of its entries.
func (cdb *CorpusDB) DeleteCorpus(ctx context.Context, name string) error {
	info, err := cdb.GetCorpus(ctx, name)
	if err != nil {
		return err
	}

	tx, err := cdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteCorpusTx(ctx, tx, info.ID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete: %w", err)
	}
	return nil
}

func deleteCorpusTx(ctx context.Context, tx *sql.Tx, id int64) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM corpus_entries WHERE corpus_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete corpus entries: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM corpora WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete corpus: %w", err)
	}
	return nil
}

// LoadIndex reads every entry of the corpus called name into a corpus.Index.
func (cdb *CorpusDB) LoadIndex(ctx context.Context, name string) (*corpus.Index, error) {
	info, err := cdb.GetCorpus(ctx, name)
	if err != nil {
		return nil, err
	}
	return cdb.loadIndex(ctx, info)
}

func (cdb *CorpusDB) loadIndex(ctx context.Context, info *CorpusInfo) (*corpus.Index, error) {
	rows, err := cdb.db.QueryContext(ctx, "SELECT password FROM corpus_entries WHERE corpus_id = ?", info.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus entries: %w", err)
	}
	defer rows.Close()

	b := corpus.NewBuilder(info.Entries)
	for rows.Next() {
		var password string
		if err := rows.Scan(&password); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		b.Add(password)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load corpus entries: %w", err)
	}

	return b.Build(), nil
}

// LoadCorpus is LoadIndex reported as a corpus.LoadResult, so callers can
// treat the store like a word list on disk. An unknown name yields
// StatusMissing and an imported corpus without entries yields StatusEmpty.
func (cdb *CorpusDB) LoadCorpus(ctx context.Context, name string) (*corpus.LoadResult, error) {
	result := &corpus.LoadResult{Path: cdb.dbPath + "#" + name, Index: corpus.NewIndex()}

	info, err := cdb.GetCorpus(ctx, name)
	if errors.Is(err, ErrCorpusNotFound) {
		result.Status = corpus.StatusMissing
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	idx, err := cdb.loadIndex(ctx, info)
	if err != nil {
		return nil, err
	}

	result.Index = idx
	result.Lines = info.Lines
	if idx.Empty() {
		result.Status = corpus.StatusEmpty
	} else {
		result.Status = corpus.StatusLoaded
	}
	return result, nil
}

// ContainsPassword reports whether password is stored in the corpus called
// name without loading the whole corpus into memory.
func (cdb *CorpusDB) ContainsPassword(ctx context.Context, name, password string) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM corpus_entries e
		JOIN corpora c ON c.id = e.corpus_id
		WHERE c.name = ? AND e.password = ?
	)
	`

	var found bool
	if err := cdb.db.QueryRowContext(ctx, query, name, password).Scan(&found); err != nil {
		return false, fmt.Errorf("failed to query corpus: %w", err)
	}
	return found, nil
}

// Lookup checks membership in one stored corpus with a query per password
// instead of loading every entry. It satisfies strength.Membership and is
// safe for concurrent use. A failed query counts as not found; the first
// failure is kept and reported by Err.
type Lookup struct {
	ctx  context.Context //nolint:containedctx // Contains has no context parameter
	cdb  *CorpusDB
	info *CorpusInfo

	mu  sync.Mutex
	err error
}

// NewLookup returns a Lookup over the corpus called name. It returns
// ErrCorpusNotFound when no such corpus was imported.
func (cdb *CorpusDB) NewLookup(ctx context.Context, name string) (*Lookup, error) {
	info, err := cdb.GetCorpus(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Lookup{ctx: ctx, cdb: cdb, info: info}, nil
}

// Info returns the corpus the lookup queries.
func (l *Lookup) Info() *CorpusInfo {
	return l.info
}

// Contains reports whether password is stored in the corpus.
func (l *Lookup) Contains(password string) bool {
	found, err := l.cdb.ContainsPassword(l.ctx, l.info.Name, password)
	if err != nil {
		l.mu.Lock()
		if l.err == nil {
			l.err = err
		}
		l.mu.Unlock()
		return false
	}
	return found
}

// Err returns the first query error, if any.
func (l *Lookup) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
}

// parseTimestamp tries every entry of timestampFormats and returns the zero
// time when none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
