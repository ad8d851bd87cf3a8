package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cedrichouse/houseplans-api/internal/domains/orders/domain"
	"github.com/cedrichouse/houseplans-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle and schema.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to the orders table.
type orderRecord struct {
	ID                int64           `gorm:"primaryKey;autoIncrement;column:id"`
	PlanID            int64           `gorm:"column:plan_id;not null;index"`
	Amount            decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	Status            string          `gorm:"column:status;type:varchar(20);not null;index"`
	CheckoutSessionID *string         `gorm:"column:checkout_session_id;size:255;index"`
	PaymentID         *string         `gorm:"column:payment_id;size:255"`
	CustomerEmail     *string         `gorm:"column:customer_email;size:254"`
	ReceiptGenerated  bool            `gorm:"column:receipt_generated;not null;default:false"`
	ReceiptNumber     *string         `gorm:"column:receipt_number;size:50;uniqueIndex"`
	CreatedAt         time.Time       `gorm:"column:created_at;index"`
	UpdatedAt         time.Time       `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Save inserts a new order or updates the mutable columns of an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"status":              record.Status,
			"checkout_session_id": record.CheckoutSessionID,
			"payment_id":          record.PaymentID,
			"customer_email":      record.CustomerEmail,
			"updated_at":          gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all orders ordered by id.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

// AssignReceipt sets the receipt number only while none is stored, then reloads the row.
func (r *Repository) AssignReceipt(ctx context.Context, id int64, number string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ? AND receipt_number IS NULL", id).
		Updates(map[string]any{
			"receipt_number":    number,
			"receipt_generated": true,
			"updated_at":        gorm.Expr("NOW()"),
		}).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:                order.ID,
		PlanID:            order.PlanID,
		Amount:            order.Amount,
		Status:            string(order.Status),
		CheckoutSessionID: nullable(order.CheckoutSessionID),
		PaymentID:         nullable(order.PaymentID),
		CustomerEmail:     nullable(order.CustomerEmail),
		ReceiptGenerated:  order.ReceiptGenerated,
		ReceiptNumber:     nullable(order.ReceiptNumber),
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:                r.ID,
		PlanID:            r.PlanID,
		Amount:            r.Amount,
		Status:            domain.Status(r.Status),
		CheckoutSessionID: deref(r.CheckoutSessionID),
		PaymentID:         deref(r.PaymentID),
		CustomerEmail:     deref(r.CustomerEmail),
		ReceiptGenerated:  r.ReceiptGenerated,
		ReceiptNumber:     deref(r.ReceiptNumber),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
