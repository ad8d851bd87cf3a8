package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/inquiries/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists enquiries in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type contactMessageRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Name      string    `gorm:"column:name;size:255;not null"`
	Email     string    `gorm:"column:email;size:254;not null"`
	Phone     string    `gorm:"column:phone;size:50"`
	Subject   string    `gorm:"column:subject;size:255;not null"`
	Message   string    `gorm:"column:message;not null"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
}

func (contactMessageRecord) TableName() string { return "contact_messages" }

type quoteRequestRecord struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;column:id"`
	FullName       string          `gorm:"column:full_name;size:255;not null"`
	Email          string          `gorm:"column:email;size:254;not null"`
	Phone          string          `gorm:"column:phone;size:50;not null"`
	City           string          `gorm:"column:city;size:100;not null"`
	PreferredStyle string          `gorm:"column:preferred_style;size:100;not null"`
	CustomStyle    string          `gorm:"column:custom_style;size:255"`
	Bedrooms       int             `gorm:"column:bedrooms"`
	Bathrooms      int             `gorm:"column:bathrooms"`
	OtherRooms     string          `gorm:"column:other_rooms"`
	YardLength     decimal.Decimal `gorm:"column:yard_length;type:numeric(8,2)"`
	YardBreadth    decimal.Decimal `gorm:"column:yard_breadth;type:numeric(8,2)"`
	Budget         string          `gorm:"column:budget;size:100;not null"`
	Description    string          `gorm:"column:description;not null"`
	CreatedAt      time.Time       `gorm:"column:created_at;index"`
}

func (quoteRequestRecord) TableName() string { return "quote_requests" }

func (r *Repository) CreateContactMessage(ctx context.Context, msg *domain.ContactMessage) (*domain.ContactMessage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := contactMessageRecord{Name: msg.Name, Email: msg.Email, Phone: msg.Phone, Subject: msg.Subject, Message: msg.Message}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetContactMessage(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record contactMessageRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*domain.ContactMessage, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []contactMessageRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.ContactMessage, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) CreateQuoteRequest(ctx context.Context, req *domain.QuoteRequest) (*domain.QuoteRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := quoteRequestRecord{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		City:           req.City,
		PreferredStyle: req.PreferredStyle,
		CustomStyle:    req.CustomStyle,
		Bedrooms:       req.Bedrooms,
		Bathrooms:      req.Bathrooms,
		OtherRooms:     req.OtherRooms,
		YardLength:     req.YardLength,
		YardBreadth:    req.YardBreadth,
		Budget:         req.Budget,
		Description:    req.Description,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) GetQuoteRequest(ctx context.Context, id int64) (*domain.QuoteRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record quoteRequestRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return record.toDomain(), nil
}

func (r *Repository) ListQuoteRequests(ctx context.Context) ([]*domain.QuoteRequest, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []quoteRequestRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.QuoteRequest, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres inquiries repository not configured")
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ports.ErrNotFound
	}
	return err
}

func (r contactMessageRecord) toDomain() *domain.ContactMessage {
	return &domain.ContactMessage{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Subject:   r.Subject,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

func (r quoteRequestRecord) toDomain() *domain.QuoteRequest {
	return &domain.QuoteRequest{
		ID:             r.ID,
		FullName:       r.FullName,
		Email:          r.Email,
		Phone:          r.Phone,
		City:           r.City,
		PreferredStyle: r.PreferredStyle,
		CustomStyle:    r.CustomStyle,
		Bedrooms:       r.Bedrooms,
		Bathrooms:      r.Bathrooms,
		OtherRooms:     r.OtherRooms,
		YardLength:     r.YardLength,
		YardBreadth:    r.YardBreadth,
		Budget:         r.Budget,
		Description:    r.Description,
		CreatedAt:      r.CreatedAt,
	}
}
