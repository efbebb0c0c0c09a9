package domain

import "time"

// MaxNameLength is the longest allowed Segment, Brand, or Vehicle name.
const MaxNameLength = 100

// Segment represents a vehicle segment such as "SUV" or "Sedan"
type Segment struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Brand represents a vehicle manufacturer
type Brand struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Vehicle represents a catalog entry. SegmentName and BrandName are derived
// read-only labels resolved from the referenced rows when a vehicle is read.
type Vehicle struct {
	ID          int64
	Name        string
	ReleaseYear int
	Price       Price
	UserID      int64 // Owning user, bound to the creating caller
	SegmentID   int64
	BrandID     int64
	SegmentName string
	BrandName   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SegmentRepository defines data access for segments. Delete cascades: all
// vehicles referencing the segment are removed in the same transaction.
type SegmentRepository interface {
	List() ([]*Segment, error)
	GetByID(id int64) (*Segment, error)
	Create(segment *Segment) error
	Update(segment *Segment) error
	Delete(id int64) error
}

// BrandRepository defines data access for brands. Delete cascades the same
// way as SegmentRepository.Delete.
type BrandRepository interface {
	List() ([]*Brand, error)
	GetByID(id int64) (*Brand, error)
	Create(brand *Brand) error
	Update(brand *Brand) error
	Delete(id int64) error
}

// VehicleRepository defines data access for vehicles
type VehicleRepository interface {
	List() ([]*Vehicle, error)
	GetByID(id int64) (*Vehicle, error)
	Create(vehicle *Vehicle) error
	Update(vehicle *Vehicle) error
	Delete(id int64) error
}
