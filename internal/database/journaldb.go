package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/riskscan/internal/model"
)

// FileName is the journal database file name inside the data directory.
const FileName = "riskscan.db"

// storedTimeFormat is fixed-width so submitted_at sorts lexically in time
// order. Times are stored in UTC.
const storedTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNilSubmission is returned by RecordSubmission for a nil record.
var ErrNilSubmission = errors.New("nil submission")

// JournalDB stores locally submitted analyses.
type JournalDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures JournalDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging so readers do not block the
	// writer.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a JournalDB in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*JournalDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("journal not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check journal path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file; mode=rwc allows it.
	// A watch console and a journal listing may hold the file at once, so
	// writers wait for the lock instead of failing with SQLITE_BUSY.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}
	dsn += "&_pragma=busy_timeout(5000)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	jdb := &JournalDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := jdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return jdb, nil
}

// Close closes the database connection.
func (jdb *JournalDB) Close() error {
	return jdb.db.Close()
}

// Path returns the database file path.
func (jdb *JournalDB) Path() string {
	return jdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (jdb *JournalDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		content TEXT NOT NULL,
		digest TEXT,
		risk_level TEXT NOT NULL,
		reason TEXT,
		submitted_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at);
	CREATE INDEX IF NOT EXISTS idx_submissions_risk ON submissions(risk_level);
	CREATE INDEX IF NOT EXISTS idx_submissions_digest ON submissions(digest);
	`

	_, err := jdb.db.ExecContext(context.Background(), schema)
	return err
}

// RecordSubmission inserts s and sets its ID. A zero SubmittedAt is replaced
// with the current time.
func (jdb *JournalDB) RecordSubmission(ctx context.Context, s *model.Submission) error {
	if s == nil {
		return ErrNilSubmission
	}
	if s.SubmittedAt.IsZero() {
		s.SubmittedAt = time.Now()
	}

	query := `
	INSERT INTO submissions (kind, content, digest, risk_level, reason, submitted_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := jdb.db.ExecContext(ctx, query,
		s.Kind,
		s.Content,
		nullString(s.Digest),
		s.RiskLevel.String(),
		s.Reason,
		s.SubmittedAt.UTC().Format(storedTimeFormat),
	)
	if err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read submission id: %w", err)
	}
	s.ID = id

	return nil
}

// ListSubmissions returns the most recent submissions, newest first.
// A non-positive limit returns all of them.
func (jdb *JournalDB) ListSubmissions(ctx context.Context, limit int) ([]*model.Submission, error) {
	query := `
	SELECT id, kind, content, digest, risk_level, reason, submitted_at
	FROM submissions
	ORDER BY submitted_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := jdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*model.Submission, 0)
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}

	return submissions, rows.Err()
}

// GetSubmission returns the submission with the given ID, or nil if there is
// none.
func (jdb *JournalDB) GetSubmission(ctx context.Context, id int64) (*model.Submission, error) {
	query := `
	SELECT id, kind, content, digest, risk_level, reason, submitted_at
	FROM submissions
	WHERE id = ?
	`

	s, err := scanSubmission(jdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CountByRisk returns how many journaled submissions received each known
// risk level. Unknown levels are not counted.
func (jdb *JournalDB) CountByRisk(ctx context.Context) (model.StatsSnapshot, error) {
	query := `
	SELECT risk_level, COUNT(*) FROM submissions
	GROUP BY risk_level
	`

	var counts model.StatsSnapshot

	rows, err := jdb.db.QueryContext(ctx, query)
	if err != nil {
		return counts, fmt.Errorf("failed to count submissions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var n int
		if err := rows.Scan(&level, &n); err != nil {
			return counts, fmt.Errorf("failed to scan count: %w", err)
		}
		switch model.RiskLevel(level) {
		case model.RiskLow:
			counts.Low += n
		case model.RiskMedium:
			counts.Medium += n
		case model.RiskHigh:
			counts.High += n
		}
	}

	return counts, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSubmission reads one submissions row.
func scanSubmission(row rowScanner) (*model.Submission, error) {
	var s model.Submission
	var digest, reason sql.NullString
	var level, submittedAt string

	if err := row.Scan(&s.ID, &s.Kind, &s.Content, &digest, &level, &reason, &submittedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan submission: %w", err)
	}

	s.Digest = digest.String
	s.Reason = reason.String
	s.RiskLevel = model.RiskLevel(level)
	s.SubmittedAt = parseTimestamp(submittedAt)

	return &s, nil
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // storedTimeFormat and other RFC3339 variants
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
