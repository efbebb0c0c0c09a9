package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yourorg/vehiclecatalog/internal/domain"
)

// PostgresVehicleRepository implements domain.VehicleRepository using
// PostgreSQL. Reads join the segment and brand rows so every vehicle comes
// back with its derived display names.
type PostgresVehicleRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresVehicleRepository creates a new vehicle repository
func NewPostgresVehicleRepository(db *sql.DB, logger *slog.Logger) *PostgresVehicleRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresVehicleRepository{db: db, logger: logger}
}

const vehicleSelect = `
	SELECT v.id, v.name, v.release_year, v.price, v.user_id,
	       v.segment_id, v.brand_id, s.name, b.name,
	       v.created_at, v.updated_at
	FROM vehicles v
	JOIN segments s ON s.id = v.segment_id
	JOIN brands b ON b.id = v.brand_id
`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.ReleaseYear,
		&v.Price,
		&v.UserID,
		&v.SegmentID,
		&v.BrandID,
		&v.SegmentName,
		&v.BrandName,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// List returns all vehicles ordered by id
func (r *PostgresVehicleRepository) List() ([]*domain.Vehicle, error) {
	rows, err := r.db.Query(vehicleSelect + ` ORDER BY v.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	out := []*domain.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByID retrieves a vehicle by ID
func (r *PostgresVehicleRepository) GetByID(id int64) (*domain.Vehicle, error) {
	v, err := scanVehicle(r.db.QueryRow(vehicleSelect+` WHERE v.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return v, nil
}

// Create creates a new vehicle and fills in the derived segment and brand names
func (r *PostgresVehicleRepository) Create(vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (name, release_year, price, user_id, segment_id, brand_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(
		query,
		vehicle.Name,
		vehicle.ReleaseYear,
		vehicle.Price,
		vehicle.UserID,
		vehicle.SegmentID,
		vehicle.BrandID,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)

	if err != nil {
		r.logger.Error("failed to create vehicle",
			slog.String("name", vehicle.Name),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	created, err := r.GetByID(vehicle.ID)
	if err != nil {
		return err
	}
	*vehicle = *created
	return nil
}

// Update updates an existing vehicle and refreshes the derived names
func (r *PostgresVehicleRepository) Update(vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $1, release_year = $2, price = $3, segment_id = $4, brand_id = $5, updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`
	err := r.db.QueryRow(
		query,
		vehicle.Name,
		vehicle.ReleaseYear,
		vehicle.Price,
		vehicle.SegmentID,
		vehicle.BrandID,
		vehicle.ID,
	).Scan(&vehicle.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	updated, err := r.GetByID(vehicle.ID)
	if err != nil {
		return err
	}
	*vehicle = *updated
	return nil
}

// Delete removes a vehicle
func (r *PostgresVehicleRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
