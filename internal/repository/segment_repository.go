package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/vehiclecatalog/internal/domain"
)

// PostgresSegmentRepository implements domain.SegmentRepository using PostgreSQL
type PostgresSegmentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresSegmentRepository creates a new segment repository
func NewPostgresSegmentRepository(db *sql.DB, logger *slog.Logger) *PostgresSegmentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSegmentRepository{db: db, logger: logger}
}

// List returns all segments ordered by id
func (r *PostgresSegmentRepository) List() ([]*domain.Segment, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM segments
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list segments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Segment{}
	for rows.Next() {
		s := &domain.Segment{}
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID retrieves a segment by ID
func (r *PostgresSegmentRepository) GetByID(id int64) (*domain.Segment, error) {
	s := &domain.Segment{}
	query := `
		SELECT id, name, created_at, updated_at
		FROM segments
		WHERE id = $1
	`
	err := r.db.QueryRow(query, id).Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get segment: %w", err)
	}
	return s, nil
}

// Create creates a new segment
func (r *PostgresSegmentRepository) Create(segment *domain.Segment) error {
	query := `
		INSERT INTO segments (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRow(query, segment.Name).Scan(&segment.ID, &segment.CreatedAt, &segment.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create segment: %w", err)
	}
	return nil
}

// Update updates an existing segment
func (r *PostgresSegmentRepository) Update(segment *domain.Segment) error {
	query := `
		UPDATE segments
		SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRow(query, segment.Name, segment.ID).Scan(&segment.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update segment: %w", err)
	}
	return nil
}

// Delete removes a segment and every vehicle referencing it. Both deletes
// run in one transaction so a concurrent reader never sees the segment gone
// while its vehicles remain, or the reverse.
func (r *PostgresSegmentRepository) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vehicles WHERE segment_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete dependent vehicles: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM segments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit segment delete: %w", err)
	}

	r.logger.Debug("segment deleted with cascade", slog.Int64("id", id))
	return nil
}
