package service

import (
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/yourorg/vehiclecatalog/internal/domain"
	"github.com/yourorg/vehiclecatalog/internal/observability/metrics"
	"github.com/yourorg/vehiclecatalog/pkg/cache"
)

// referenceCacheTTL bounds how stale a cached segment/brand lookup may be
// during vehicle validation.
const referenceCacheTTL = 30 * time.Second

// CatalogService implements the catalog's validation and access rules on
// top of the entity repositories. All writes are all-or-nothing: a
// validation failure means nothing was applied.
type CatalogService struct {
	segments domain.SegmentRepository
	brands   domain.BrandRepository
	vehicles domain.VehicleRepository
	cache    *cache.Cache
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	segments domain.SegmentRepository,
	brands domain.BrandRepository,
	vehicles domain.VehicleRepository,
	refCache *cache.Cache,
	logger *slog.Logger,
) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	if refCache == nil {
		refCache = cache.New()
	}

	return &CatalogService{
		segments: segments,
		brands:   brands,
		vehicles: vehicles,
		cache:    refCache,
		logger:   logger,
	}
}

// VehicleParams carries the writable vehicle fields. Nil means the field
// was absent from the request. There is deliberately no owner field here:
// the owning user is always the authenticated caller.
type VehicleParams struct {
	Name        *string
	ReleaseYear *int
	Price       *domain.Price
	SegmentID   *int64
	BrandID     *int64
}

// --- Segments ---

func (s *CatalogService) ListSegments() ([]*domain.Segment, error) {
	return s.segments.List()
}

func (s *CatalogService) GetSegment(id int64) (*domain.Segment, error) {
	return s.segments.GetByID(id)
}

func (s *CatalogService) CreateSegment(name *string) (*domain.Segment, error) {
	if err := validateName(name); err != nil {
		metrics.ObserveCatalogOperation("segment", "create", "invalid")
		return nil, err
	}

	segment := &domain.Segment{Name: *name}
	if err := s.segments.Create(segment); err != nil {
		metrics.ObserveCatalogOperation("segment", "create", "error")
		return nil, err
	}

	metrics.ObserveCatalogOperation("segment", "create", "success")
	return segment, nil
}

// ReplaceSegment is a full update: the name must be present.
func (s *CatalogService) ReplaceSegment(id int64, name *string) (*domain.Segment, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.updateSegment(id, *name)
}

// PatchSegment applies only the supplied fields.
func (s *CatalogService) PatchSegment(id int64, name *string) (*domain.Segment, error) {
	existing, err := s.segments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return existing, nil
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.updateSegment(id, *name)
}

func (s *CatalogService) updateSegment(id int64, name string) (*domain.Segment, error) {
	segment, err := s.segments.GetByID(id)
	if err != nil {
		return nil, err
	}
	segment.Name = name
	if err := s.segments.Update(segment); err != nil {
		metrics.ObserveCatalogOperation("segment", "update", "error")
		return nil, err
	}
	s.cache.Delete(segmentCacheKey(id))
	metrics.ObserveCatalogOperation("segment", "update", "success")
	return segment, nil
}

// DeleteSegment removes the segment and cascades to its vehicles.
func (s *CatalogService) DeleteSegment(id int64) error {
	if err := s.segments.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(segmentCacheKey(id))
	metrics.ObserveCatalogOperation("segment", "delete", "success")
	return nil
}

// --- Brands ---

func (s *CatalogService) ListBrands() ([]*domain.Brand, error) {
	return s.brands.List()
}

func (s *CatalogService) GetBrand(id int64) (*domain.Brand, error) {
	return s.brands.GetByID(id)
}

func (s *CatalogService) CreateBrand(name *string) (*domain.Brand, error) {
	if err := validateName(name); err != nil {
		metrics.ObserveCatalogOperation("brand", "create", "invalid")
		return nil, err
	}

	brand := &domain.Brand{Name: *name}
	if err := s.brands.Create(brand); err != nil {
		metrics.ObserveCatalogOperation("brand", "create", "error")
		return nil, err
	}

	metrics.ObserveCatalogOperation("brand", "create", "success")
	return brand, nil
}

func (s *CatalogService) ReplaceBrand(id int64, name *string) (*domain.Brand, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.updateBrand(id, *name)
}

func (s *CatalogService) PatchBrand(id int64, name *string) (*domain.Brand, error) {
	existing, err := s.brands.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name == nil {
		return existing, nil
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	return s.updateBrand(id, *name)
}

func (s *CatalogService) updateBrand(id int64, name string) (*domain.Brand, error) {
	brand, err := s.brands.GetByID(id)
	if err != nil {
		return nil, err
	}
	brand.Name = name
	if err := s.brands.Update(brand); err != nil {
		metrics.ObserveCatalogOperation("brand", "update", "error")
		return nil, err
	}
	s.cache.Delete(brandCacheKey(id))
	metrics.ObserveCatalogOperation("brand", "update", "success")
	return brand, nil
}

// DeleteBrand removes the brand and cascades to its vehicles.
func (s *CatalogService) DeleteBrand(id int64) error {
	if err := s.brands.Delete(id); err != nil {
		return err
	}
	s.cache.Delete(brandCacheKey(id))
	metrics.ObserveCatalogOperation("brand", "delete", "success")
	return nil
}

// --- Vehicles ---

func (s *CatalogService) ListVehicles() ([]*domain.Vehicle, error) {
	return s.vehicles.List()
}

func (s *CatalogService) GetVehicle(id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(id)
}

// CreateVehicle creates a vehicle owned by the calling user. The owner is
// always the resolved caller; there is no way to supply a different one.
func (s *CatalogService) CreateVehicle(userID int64, p VehicleParams) (*domain.Vehicle, error) {
	if err := s.validateVehicle(p, true); err != nil {
		metrics.ObserveCatalogOperation("vehicle", "create", "invalid")
		return nil, err
	}

	vehicle := &domain.Vehicle{
		Name:        *p.Name,
		ReleaseYear: *p.ReleaseYear,
		Price:       *p.Price,
		UserID:      userID,
		SegmentID:   *p.SegmentID,
		BrandID:     *p.BrandID,
	}

	if err := s.vehicles.Create(vehicle); err != nil {
		metrics.ObserveCatalogOperation("vehicle", "create", "error")
		return nil, err
	}

	metrics.ObserveCatalogOperation("vehicle", "create", "success")
	return vehicle, nil
}

// ReplaceVehicle is a full update: every writable field must be present.
// The owner is never changed by an update.
func (s *CatalogService) ReplaceVehicle(id int64, p VehicleParams) (*domain.Vehicle, error) {
	if err := s.validateVehicle(p, true); err != nil {
		return nil, err
	}
	return s.updateVehicle(id, p)
}

// PatchVehicle applies only the supplied fields; absent fields keep their
// prior value.
func (s *CatalogService) PatchVehicle(id int64, p VehicleParams) (*domain.Vehicle, error) {
	if err := s.validateVehicle(p, false); err != nil {
		return nil, err
	}
	return s.updateVehicle(id, p)
}

func (s *CatalogService) updateVehicle(id int64, p VehicleParams) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		vehicle.Name = *p.Name
	}
	if p.ReleaseYear != nil {
		vehicle.ReleaseYear = *p.ReleaseYear
	}
	if p.Price != nil {
		vehicle.Price = *p.Price
	}
	if p.SegmentID != nil {
		vehicle.SegmentID = *p.SegmentID
	}
	if p.BrandID != nil {
		vehicle.BrandID = *p.BrandID
	}

	if err := s.vehicles.Update(vehicle); err != nil {
		metrics.ObserveCatalogOperation("vehicle", "update", "error")
		return nil, err
	}

	metrics.ObserveCatalogOperation("vehicle", "update", "success")
	return vehicle, nil
}

func (s *CatalogService) DeleteVehicle(id int64) error {
	if err := s.vehicles.Delete(id); err != nil {
		return err
	}
	metrics.ObserveCatalogOperation("vehicle", "delete", "success")
	return nil
}

// validateVehicle checks the supplied fields. With required=true every
// writable field must be present (create and full update); otherwise only
// present fields are checked (partial update).
func (s *CatalogService) validateVehicle(p VehicleParams, required bool) error {
	verr := &domain.ValidationError{}

	if p.Name == nil {
		if required {
			verr.Add("name", "this field is required")
		}
	} else if *p.Name == "" {
		verr.Add("name", "this field may not be blank")
	} else if utf8.RuneCountInString(*p.Name) > domain.MaxNameLength {
		verr.Add("name", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}

	if p.ReleaseYear == nil && required {
		verr.Add("release_year", "this field is required")
	}

	if p.Price == nil {
		if required {
			verr.Add("price", "this field is required")
		}
	} else if !p.Price.Valid() {
		verr.Add("price", fmt.Sprintf("must be between 0.00 and %s", domain.MaxPrice))
	}

	if p.SegmentID == nil {
		if required {
			verr.Add("segment", "this field is required")
		}
	} else if !s.segmentExists(*p.SegmentID) {
		verr.Add("segment", "segment does not exist")
	}

	if p.BrandID == nil {
		if required {
			verr.Add("brand", "this field is required")
		}
	} else if !s.brandExists(*p.BrandID) {
		verr.Add("brand", "brand does not exist")
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (s *CatalogService) segmentExists(id int64) bool {
	key := segmentCacheKey(id)
	if _, ok := s.cache.Get(key); ok {
		return true
	}
	segment, err := s.segments.GetByID(id)
	if err != nil {
		return false
	}
	s.cache.Set(key, segment.Name, referenceCacheTTL)
	return true
}

func (s *CatalogService) brandExists(id int64) bool {
	key := brandCacheKey(id)
	if _, ok := s.cache.Get(key); ok {
		return true
	}
	brand, err := s.brands.GetByID(id)
	if err != nil {
		return false
	}
	s.cache.Set(key, brand.Name, referenceCacheTTL)
	return true
}

func segmentCacheKey(id int64) string { return fmt.Sprintf("segment:%d", id) }
func brandCacheKey(id int64) string   { return fmt.Sprintf("brand:%d", id) }

func validateName(name *string) error {
	if name == nil {
		return domain.NewValidationError("name", "this field is required")
	}
	if *name == "" {
		return domain.NewValidationError("name", "this field may not be blank")
	}
	// The limit counts characters, not bytes: multibyte names are common.
	if utf8.RuneCountInString(*name) > domain.MaxNameLength {
		return domain.NewValidationError("name", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}
	return nil
}
