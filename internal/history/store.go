package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/tubefetch/tube-downloader/internal/model"
	"github.com/tubefetch/tube-downloader/internal/platform"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite
const DriverName = "sqlite"

// Default store location
const (
	DefaultDirName  = ".dbs"
	DefaultFileName = "app_db.db"
)

// TableCompleted is the only table used in practice
const TableCompleted = "completed_downloads"

// tableNameRE guards table names before they reach SQL text; placeholders
// cannot cover identifiers.
var tableNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is the persistence gateway for completed-download history. The
// datastore is opened and closed per call: there is no persistent
// connection, and overlapping calls against the same file are the caller's
// responsibility to coordinate.
type Store struct {
	path string
}

// NewStore creates a gateway for the SQLite file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the store location under baseDir, creating the
// directory if needed.
func DefaultPath(baseDir string) (string, error) {
	dir := filepath.Join(baseDir, DefaultDirName)
	if err := platform.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("create history dir: %w", err)
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// EnsureTable creates the history table if it is absent. Idempotent; safe to
// call on every startup.
func (s *Store) EnsureTable(ctx context.Context, table string) error {
	db, err := s.open(table)
	if err != nil {
		return err
	}
	defer db.Close()

	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		filename TEXT NOT NULL,
		file_size TEXT NOT NULL,
		status TEXT NOT NULL,
		time_left TEXT,
		transfer_rate TEXT
	);`, table)

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("ensure table %s: %w", table, err)
	}
	return nil
}

// Insert appends one row. Filenames are not unique; inserting the same
// filename twice produces two rows, both removed by a later delete.
func (s *Store) Insert(ctx context.Context, table string, rec model.DownloadRecord) error {
	db, err := s.open(table)
	if err != nil {
		return err
	}
	defer db.Close()

	query := fmt.Sprintf(`
	INSERT INTO %s (filename, file_size, status, time_left, transfer_rate)
	VALUES (?, ?, ?, ?, ?)`, table)

	_, err = db.ExecContext(ctx, query,
		rec.Filename, rec.FileSize, rec.Status, rec.TimeLeft, rec.TransferRate)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}

	logrus.Debugf("history: inserted %q into %s", rec.Filename, table)
	return nil
}

// DeleteByFilenames removes every row whose filename is in names, as one
// transaction: either all target rows go or none do.
func (s *Store) DeleteByFilenames(ctx context.Context, table string, names []string) error {
	if len(names) == 0 {
		return nil
	}

	db, err := s.open(table)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete from %s: %w", table, err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE filename = ?`, table)
	for _, name := range names {
		if _, err := tx.ExecContext(ctx, query, name); err != nil {
			tx.Rollback()
			return fmt.Errorf("delete %q from %s: %w", name, table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete from %s: %w", table, err)
	}

	logrus.Debugf("history: deleted %d filename(s) from %s", len(names), table)
	return nil
}

// DeleteByFilename removes every row matching a single filename.
func (s *Store) DeleteByFilename(ctx context.Context, table, name string) error {
	return s.DeleteByFilenames(ctx, table, []string{name})
}

// FetchAll returns all rows in storage order (ascending insertion id), used
// to hydrate the table at session start.
func (s *Store) FetchAll(ctx context.Context, table string) ([]model.DownloadRecord, error) {
	db, err := s.open(table)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf(`
	SELECT id, filename, file_size, status, time_left, transfer_rate
	FROM %s ORDER BY id ASC`, table)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", table, err)
	}
	defer rows.Close()

	var records []model.DownloadRecord
	for rows.Next() {
		var rec model.DownloadRecord
		var timeLeft, transferRate sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Filename, &rec.FileSize, &rec.Status, &timeLeft, &transferRate); err != nil {
			return nil, fmt.Errorf("scan row from %s: %w", table, err)
		}
		rec.TimeLeft = timeLeft.String
		rec.TransferRate = transferRate.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows from %s: %w", table, err)
	}

	return records, nil
}

func (s *Store) open(table string) (*sql.DB, error) {
	if !tableNameRE.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	db, err := sql.Open(DriverName, s.path)
	if err != nil {
		return nil, fmt.Errorf("open history db %s: %w", s.path, err)
	}
	return db, nil
}
