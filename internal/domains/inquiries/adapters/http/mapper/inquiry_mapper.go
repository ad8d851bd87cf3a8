package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	inquirydomain "github.com/cedrichouse/houseplans-api/internal/domains/inquiries/domain"
)

// ContactMessage is the contact form payload.
type ContactMessage struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name" binding:"required,max=255"`
	Email     string     `json:"email" binding:"required,email"`
	Phone     string     `json:"phone" binding:"max=50"`
	Subject   string     `json:"subject" binding:"required,max=255"`
	Message   string     `json:"message" binding:"required"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// QuoteRequest is the custom design quote payload.
type QuoteRequest struct {
	ID             int64           `json:"id"`
	FullName       string          `json:"full_name" binding:"required,max=255"`
	Email          string          `json:"email" binding:"required,email"`
	Phone          string          `json:"phone" binding:"required,max=50"`
	City           string          `json:"city" binding:"required,max=100"`
	PreferredStyle string          `json:"preferred_style" binding:"required,max=100"`
	CustomStyle    string          `json:"custom_style" binding:"max=255"`
	Bedrooms       int             `json:"bedrooms" binding:"gte=0"`
	Bathrooms      int             `json:"bathrooms" binding:"gte=0"`
	OtherRooms     string          `json:"other_rooms"`
	YardLength     decimal.Decimal `json:"yard_length"`
	YardBreadth    decimal.Decimal `json:"yard_breadth"`
	Budget         string          `json:"budget" binding:"required,max=100"`
	Description    string          `json:"description" binding:"required"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
}

func ToDomainContactMessage(m ContactMessage) *inquirydomain.ContactMessage {
	return &inquirydomain.ContactMessage{Name: m.Name, Email: m.Email, Phone: m.Phone, Subject: m.Subject, Message: m.Message}
}

func FromDomainContactMessage(m *inquirydomain.ContactMessage) ContactMessage {
	if m == nil {
		return ContactMessage{}
	}
	created := m.CreatedAt
	return ContactMessage{ID: m.ID, Name: m.Name, Email: m.Email, Phone: m.Phone, Subject: m.Subject, Message: m.Message, CreatedAt: &created}
}

func ToDomainQuoteRequest(q QuoteRequest) *inquirydomain.QuoteRequest {
	return &inquirydomain.QuoteRequest{
		FullName:       q.FullName,
		Email:          q.Email,
		Phone:          q.Phone,
		City:           q.City,
		PreferredStyle: q.PreferredStyle,
		CustomStyle:    q.CustomStyle,
		Bedrooms:       q.Bedrooms,
		Bathrooms:      q.Bathrooms,
		OtherRooms:     q.OtherRooms,
		YardLength:     q.YardLength,
		YardBreadth:    q.YardBreadth,
		Budget:         q.Budget,
		Description:    q.Description,
	}
}

func FromDomainQuoteRequest(q *inquirydomain.QuoteRequest) QuoteRequest {
	if q == nil {
		return QuoteRequest{}
	}
	created := q.CreatedAt
	return QuoteRequest{
		ID:             q.ID,
		FullName:       q.FullName,
		Email:          q.Email,
		Phone:          q.Phone,
		City:           q.City,
		PreferredStyle: q.PreferredStyle,
		CustomStyle:    q.CustomStyle,
		Bedrooms:       q.Bedrooms,
		Bathrooms:      q.Bathrooms,
		OtherRooms:     q.OtherRooms,
		YardLength:     q.YardLength,
		YardBreadth:    q.YardBreadth,
		Budget:         q.Budget,
		Description:    q.Description,
		CreatedAt:      &created,
	}
}
