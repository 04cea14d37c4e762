package cache

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/dekarrin/mmtoolbox/internal/mmerrors"
	"github.com/dekarrin/rezi"
	"modernc.org/sqlite"
)

// Store is the parser-cache collaborator names: a pair of
// load/store operations over a content-addressable digest, backed by a
// file.
type Store interface {
	Load(ctx context.Context, digest string) (*TableData, bool, error)
	Store(ctx context.Context, digest string, data *TableData) error
	Close() error
}

// SQLiteStore is a Store backed by a single-row-per-digest sqlite table,
// grounded on the prior toolbox's server/dao/sqlite.GameDatasDB (same
// single-table, id-keyed-blob shape, same convertToDB_ByteSlice-style
// base64 encoding of a binary payload).
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if necessary) a cache database at path
// with a plain sql.Open; one store owns one *sql.DB for its process
// lifetime. It takes no exclusive lock on the file, so another process may
// open and write the same database at the same time.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapDBError(err)
	}
	st := &SQLiteStore{db: db}
	if err := st.init(); err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS parser_tables (
		digest TEXT NOT NULL PRIMARY KEY,
		data TEXT NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, digest string) (*TableData, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data FROM parser_tables WHERE digest = ?;`, digest)
	var encoded string
	if err := row.Scan(&encoded); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, wrapDBError(err)
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, false, fmt.Errorf("cache: stored entry for digest %s is not valid base64: %w", digest, err)
	}

	var data TableData
	n, err := rezi.DecBinary(raw, &data)
	if err != nil {
		return nil, false, fmt.Errorf("cache: rezi decode of digest %s: %w", digest, err)
	}
	if n != len(raw) {
		return nil, false, fmt.Errorf("cache: rezi decode of digest %s consumed %d/%d bytes", digest, n, len(raw))
	}
	return &data, true, nil
}

func (s *SQLiteStore) Store(ctx context.Context, digest string, data *TableData) error {
	raw := rezi.EncBinary(data)
	encoded := base64.StdEncoding.EncodeToString(raw)

	_, err := s.db.ExecContext(ctx, `INSERT INTO parser_tables (digest, data) VALUES (?, ?)
		ON CONFLICT(digest) DO UPDATE SET data = excluded.data;`, digest, encoded)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func wrapDBError(err error) error {
	if err == nil {
		return nil
	}
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		return fmt.Errorf("%w: %s", mmerrors.ErrCacheStore, sqlite.ErrorCodeString[sqliteErr.Code])
	}
	return fmt.Errorf("%w: %s", mmerrors.ErrCacheStore, err.Error())
}
