package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/vehiclecatalog/internal/domain"
)

// PostgresBrandRepository implements domain.BrandRepository using PostgreSQL
type PostgresBrandRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBrandRepository creates a new brand repository
func NewPostgresBrandRepository(db *sql.DB, logger *slog.Logger) *PostgresBrandRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresBrandRepository{db: db, logger: logger}
}

// List returns all brands ordered by id
func (r *PostgresBrandRepository) List() ([]*domain.Brand, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM brands
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	out := []*domain.Brand{}
	for rows.Next() {
		b := &domain.Brand{}
		if err := rows.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID retrieves a brand by ID
func (r *PostgresBrandRepository) GetByID(id int64) (*domain.Brand, error) {
	b := &domain.Brand{}
	query := `
		SELECT id, name, created_at, updated_at
		FROM brands
		WHERE id = $1
	`
	err := r.db.QueryRow(query, id).Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return b, nil
}

// Create creates a new brand
func (r *PostgresBrandRepository) Create(brand *domain.Brand) error {
	query := `
		INSERT INTO brands (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRow(query, brand.Name).Scan(&brand.ID, &brand.CreatedAt, &brand.UpdatedAt); err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// Update updates an existing brand
func (r *PostgresBrandRepository) Update(brand *domain.Brand) error {
	query := `
		UPDATE brands
		SET name = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`
	err := r.db.QueryRow(query, brand.Name, brand.ID).Scan(&brand.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update brand: %w", err)
	}
	return nil
}

// Delete removes a brand and every vehicle referencing it, transactionally.
func (r *PostgresBrandRepository) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM vehicles WHERE brand_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete dependent vehicles: %w", err)
	}

	res, err := tx.Exec(`DELETE FROM brands WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit brand delete: %w", err)
	}

	r.logger.Debug("brand deleted with cascade", slog.Int64("id", id))
	return nil
}
