package store

import (
	"context"

	"github.com/Selvan2806/tamilselvan-portfolio/internal/models"
)

// DataStore defines the interface for persistent storage of contact
// submissions. Both PostgresStore and SQLiteStore implement this interface.
type DataStore interface {
	// Connection management
	Close()
	Ping(ctx context.Context) error

	// Submission operations
	SaveSubmission(ctx context.Context, sub *models.ContactSubmission) error
	ListSubmissions(ctx context.Context, limit, offset int) ([]models.ContactSubmission, int, error)
	CountSubmissions(ctx context.Context) (int64, error)
}
