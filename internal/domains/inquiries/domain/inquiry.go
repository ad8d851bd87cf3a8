package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNameRequired     = errors.New("name is required")
	ErrInvalidEmail     = errors.New("email address is invalid")
	ErrSubjectRequired  = errors.New("subject is required")
	ErrMessageRequired  = errors.New("message is required")
	ErrPhoneRequired    = errors.New("phone is required")
	ErrCityRequired     = errors.New("city is required")
	ErrStyleRequired    = errors.New("preferred style is required")
	ErrBudgetRequired   = errors.New("budget is required")
	ErrNegativeRooms    = errors.New("room counts must not be negative")
	ErrInvalidYardSize  = errors.New("yard dimensions must be positive")
	ErrDescriptionEmpty = errors.New("description is required")
)

// ContactMessage is a general enquiry sent from the contact page.
type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	CreatedAt time.Time
}

// Validate trims the message fields and checks the required ones.
func (m *ContactMessage) Validate() error {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Phone = strings.TrimSpace(m.Phone)
	m.Subject = strings.TrimSpace(m.Subject)
	switch {
	case m.Name == "":
		return ErrNameRequired
	case !validEmail(m.Email):
		return ErrInvalidEmail
	case m.Subject == "":
		return ErrSubjectRequired
	case strings.TrimSpace(m.Message) == "":
		return ErrMessageRequired
	}
	return nil
}

// QuoteRequest asks for a custom design quote.
type QuoteRequest struct {
	ID             int64
	FullName       string
	Email          string
	Phone          string
	City           string
	PreferredStyle string
	CustomStyle    string
	Bedrooms       int
	Bathrooms      int
	OtherRooms     string
	YardLength     decimal.Decimal
	YardBreadth    decimal.Decimal
	Budget         string
	Description    string
	CreatedAt      time.Time
}

// Validate trims the request fields and checks the required ones.
func (q *QuoteRequest) Validate() error {
	q.FullName = strings.TrimSpace(q.FullName)
	q.Email = strings.TrimSpace(q.Email)
	q.Phone = strings.TrimSpace(q.Phone)
	q.City = strings.TrimSpace(q.City)
	q.PreferredStyle = strings.TrimSpace(q.PreferredStyle)
	q.Budget = strings.TrimSpace(q.Budget)
	q.YardLength = q.YardLength.Round(2)
	q.YardBreadth = q.YardBreadth.Round(2)
	switch {
	case q.FullName == "":
		return ErrNameRequired
	case !validEmail(q.Email):
		return ErrInvalidEmail
	case q.Phone == "":
		return ErrPhoneRequired
	case q.City == "":
		return ErrCityRequired
	case q.PreferredStyle == "":
		return ErrStyleRequired
	case q.Bedrooms < 0 || q.Bathrooms < 0:
		return ErrNegativeRooms
	case !q.YardLength.IsPositive() || !q.YardBreadth.IsPositive():
		return ErrInvalidYardSize
	case q.Budget == "":
		return ErrBudgetRequired
	case strings.TrimSpace(q.Description) == "":
		return ErrDescriptionEmpty
	}
	return nil
}

func validEmail(v string) bool {
	if v == "" {
		return false
	}
	addr, err := mail.ParseAddress(v)
	return err == nil && addr.Address == v
}
