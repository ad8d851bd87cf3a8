package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists catalog properties in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed catalog. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type propertyRecord struct {
	ID                 int64                 `gorm:"primaryKey;autoIncrement;column:id"`
	Title              string                `gorm:"column:title;size:255;not null"`
	Category           string                `gorm:"column:category;size:10;not null;index"`
	Price              decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Bedrooms           int                   `gorm:"column:bedrooms"`
	Bathrooms          int                   `gorm:"column:bathrooms"`
	Garage             int                   `gorm:"column:garage"`
	FloorArea          int                   `gorm:"column:floor_area"`
	Levels             int                   `gorm:"column:levels"`
	Width              decimal.Decimal       `gorm:"column:width;type:numeric(6,2)"`
	Depth              decimal.Decimal       `gorm:"column:depth;type:numeric(6,2)"`
	Styles             pq.StringArray        `gorm:"column:styles;type:text[]"`
	Features           pq.StringArray        `gorm:"column:features;type:text[]"`
	Amenities          pq.StringArray        `gorm:"column:amenities;type:text[]"`
	Floors             []map[string]any      `gorm:"column:floors;serializer:json"`
	RoomSpecifications []map[string]any      `gorm:"column:room_specifications;serializer:json"`
	IsNew              bool                  `gorm:"column:is_new"`
	IsPopular          bool                  `gorm:"column:is_popular"`
	Description        string                `gorm:"column:description"`
	VideoURL           string                `gorm:"column:video_url"`
	EnSuite            int                   `gorm:"column:en_suite"`
	Lounges            int                   `gorm:"column:lounges"`
	DiningAreas        int                   `gorm:"column:dining_areas"`
	GarageParking      int                   `gorm:"column:garage_parking"`
	CoveredParking     int                   `gorm:"column:covered_parking"`
	PetFriendly        bool                  `gorm:"column:pet_friendly"`
	Images             []propertyImageRecord `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time             `gorm:"column:created_at"`
	UpdatedAt          time.Time             `gorm:"column:updated_at"`
}

func (propertyRecord) TableName() string { return "properties" }

type propertyImageRecord struct {
	ID         int64  `gorm:"primaryKey;autoIncrement;column:id"`
	PropertyID int64  `gorm:"column:property_id;index"`
	Image      string `gorm:"column:image;not null"`
	Position   int    `gorm:"column:position"`
}

func (propertyImageRecord) TableName() string { return "property_images" }

func (r *Repository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property is nil")
	}
	record := toRecord(property)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record propertyRecord
	if err := r.withImages(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Property, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.withImages(ctx).Order("id ASC")
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	var records []propertyRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	properties := make([]*domain.Property, 0, len(records))
	for i := range records {
		properties = append(properties, records[i].toDomain())
	}
	return properties, nil
}

func (r *Repository) withImages(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	})
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

func toRecord(p *domain.Property) propertyRecord {
	images := make([]propertyImageRecord, 0, len(p.Images))
	for i, ref := range p.Images {
		images = append(images, propertyImageRecord{Image: ref, Position: i})
	}
	return propertyRecord{
		ID:                 p.ID,
		Title:              p.Title,
		Category:           string(p.Category),
		Price:              p.Price,
		Bedrooms:           p.Bedrooms,
		Bathrooms:          p.Bathrooms,
		Garage:             p.Garage,
		FloorArea:          p.FloorArea,
		Levels:             p.Levels,
		Width:              p.Width,
		Depth:              p.Depth,
		Styles:             pq.StringArray(p.Styles),
		Features:           pq.StringArray(p.Features),
		Amenities:          pq.StringArray(p.Amenities),
		Floors:             p.Floors,
		RoomSpecifications: p.RoomSpecifications,
		IsNew:              p.IsNew,
		IsPopular:          p.IsPopular,
		Description:        p.Description,
		VideoURL:           p.VideoURL,
		EnSuite:            p.EnSuite,
		Lounges:            p.Lounges,
		DiningAreas:        p.DiningAreas,
		GarageParking:      p.GarageParking,
		CoveredParking:     p.CoveredParking,
		PetFriendly:        p.PetFriendly,
		Images:             images,
	}
}

func (r propertyRecord) toDomain() *domain.Property {
	images := make([]string, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, img.Image)
	}
	return &domain.Property{
		ID:                 r.ID,
		Title:              r.Title,
		Category:           domain.Category(r.Category),
		Price:              r.Price,
		Bedrooms:           r.Bedrooms,
		Bathrooms:          r.Bathrooms,
		Garage:             r.Garage,
		FloorArea:          r.FloorArea,
		Levels:             r.Levels,
		Width:              r.Width,
		Depth:              r.Depth,
		Styles:             []string(r.Styles),
		Features:           []string(r.Features),
		Amenities:          []string(r.Amenities),
		Floors:             r.Floors,
		RoomSpecifications: r.RoomSpecifications,
		IsNew:              r.IsNew,
		IsPopular:          r.IsPopular,
		Description:        r.Description,
		VideoURL:           r.VideoURL,
		EnSuite:            r.EnSuite,
		Lounges:            r.Lounges,
		DiningAreas:        r.DiningAreas,
		GarageParking:      r.GarageParking,
		CoveredParking:     r.CoveredParking,
		PetFriendly:        r.PetFriendly,
		Images:             images,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}
