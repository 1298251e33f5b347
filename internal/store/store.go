package store

import (
	"context"
	"time"

	"jobradar/internal/models"
)

// Store is the job persistence surface shared by the processor (writes) and
// the board renderer / API (reads).
type Store interface {
	Insert(ctx context.Context, job *models.Job) error
	Touch(ctx context.Context, id string, lastSeen time.Time) error
	List(ctx context.Context, q Query) ([]models.Job, error)
}

// Query narrows List results. Zero values mean "no filter".
type Query struct {
	Company  string
	Category string
	Tier     string
	Level    string
	Since    time.Time
	Limit    int
}
