package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
)

// SQLiteStore handles SQLite database operations.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
// If dbPath is empty, defaults to "./data/portfolio.db"
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "./data/portfolio.db"
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(ctx); err != nil {
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS contact_submissions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		client_ip TEXT DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON contact_submissions(created_at);
	CREATE INDEX IF NOT EXISTS idx_submissions_email ON contact_submissions(email);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() {
	s.db.Close()
}

// Ping checks the database connection.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// SaveSubmission inserts a contact submission.
func (s *SQLiteStore) SaveSubmission(ctx context.Context, sub *models.ContactSubmission) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_submissions (id, name, email, subject, message, client_ip, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sub.ID, sub.Name, sub.Email, sub.Subject, sub.Message, sub.ClientIP, sub.CreatedAt)
	return err
}

// ListSubmissions retrieves submissions newest first, with pagination.
func (s *SQLiteStore) ListSubmissions(ctx context.Context, limit, offset int) ([]models.ContactSubmission, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, subject, message, client_ip, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var subs []models.ContactSubmission
	for rows.Next() {
		var sub models.ContactSubmission
		err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Email,
			&sub.Subject,
			&sub.Message,
			&sub.ClientIP,
			&sub.CreatedAt,
		)
		if err != nil {
			return nil, 0, err
		}
		subs = append(subs, sub)
	}

	return subs, total, rows.Err()
}

// CountSubmissions returns the total number of stored submissions.
func (s *SQLiteStore) CountSubmissions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&count)
	return count, err
}
