package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobradar/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type clickhouseStore struct {
	conn clickhouse.Conn
}

func NewClickHouse(conn clickhouse.Conn) Store {
	return &clickhouseStore{conn: conn}
}

func (s *clickhouseStore) Insert(ctx context.Context, job *models.Job) error {
	query := `
		INSERT INTO jobs (
			id, company, title, city, state, apply_url, level, category,
			tier, remote, source, posted_at, first_seen, last_seen, raw_data
		) VALUES (
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		)
	`

	remote := uint8(0)
	if job.Remote {
		remote = 1
	}

	if err := s.conn.Exec(ctx, query,
		job.ID,
		job.Company,
		job.Title,
		job.City,
		job.State,
		job.ApplyURL,
		job.Level,
		job.Category,
		string(job.Tier),
		remote,
		job.Source,
		job.PostedAt,
		job.FirstSeen,
		job.LastSeen,
		job.RawData,
	); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}

	return nil
}

// Touch rewrites the row with a fresh last_seen; ReplacingMergeTree keeps
// the newest version per id.
func (s *clickhouseStore) Touch(ctx context.Context, id string, lastSeen time.Time) error {
	query := `
		INSERT INTO jobs
		SELECT id, company, title, city, state, apply_url, level, category,
		       tier, remote, source, posted_at, first_seen, ? AS last_seen, raw_data
		FROM jobs FINAL
		WHERE id = ?
	`

	if err := s.conn.Exec(ctx, query, lastSeen, id); err != nil {
		return fmt.Errorf("touch job %s: %w", id, err)
	}
	return nil
}

func (s *clickhouseStore) List(ctx context.Context, q Query) ([]models.Job, error) {
	var (
		conds []string
		args  []interface{}
	)

	if q.Company != "" {
		conds = append(conds, "lower(company) = lower(?)")
		args = append(args, q.Company)
	}
	if q.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, q.Category)
	}
	if q.Tier != "" {
		conds = append(conds, "tier = ?")
		args = append(args, q.Tier)
	}
	if q.Level != "" {
		conds = append(conds, "level = ?")
		args = append(args, q.Level)
	}
	if !q.Since.IsZero() {
		conds = append(conds, "posted_at >= ?")
		args = append(args, q.Since)
	}

	query := `
		SELECT id, company, title, city, state, apply_url, level, category,
		       tier, remote, source, posted_at, first_seen, last_seen, raw_data
		FROM jobs FINAL
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY posted_at DESC"
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", q.Limit)
	}

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		var (
			job    models.Job
			tier   string
			remote uint8
		)
		if err := rows.Scan(
			&job.ID,
			&job.Company,
			&job.Title,
			&job.City,
			&job.State,
			&job.ApplyURL,
			&job.Level,
			&job.Category,
			&tier,
			&remote,
			&job.Source,
			&job.PostedAt,
			&job.FirstSeen,
			&job.LastSeen,
			&job.RawData,
		); err != nil {
			return nil, fmt.Errorf("scan job row: %w", err)
		}
		job.Tier = models.Tier(tier)
		job.Remote = remote == 1
		jobs = append(jobs, job)
	}

	return jobs, nil
}
