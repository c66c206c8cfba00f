package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
)

// PostgresStore handles PostgreSQL database operations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL store with a connection pool
// and ensures the schema exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, err
	}

	store := &PostgresStore{pool: pool}
	if err := store.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return store, nil
}

// initSchema creates tables if they don't exist.
func (s *PostgresStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS contact_submissions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		client_ip TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON contact_submissions(created_at);
	CREATE INDEX IF NOT EXISTS idx_submissions_email ON contact_submissions(email);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// SaveSubmission inserts a contact submission.
func (s *PostgresStore) SaveSubmission(ctx context.Context, sub *models.ContactSubmission) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contact_submissions (id, name, email, subject, message, client_ip, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sub.ID, sub.Name, sub.Email, sub.Subject, sub.Message, sub.ClientIP, sub.CreatedAt)
	return err
}

// ListSubmissions retrieves submissions newest first, with pagination.
func (s *PostgresStore) ListSubmissions(ctx context.Context, limit, offset int) ([]models.ContactSubmission, int, error) {
	var total int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, name, email, subject, message, client_ip, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
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
func (s *PostgresStore) CountSubmissions(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM contact_submissions`).Scan(&count)
	return count, err
}
