package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category separates purchasable house plans from showcased built homes.
type Category string

const (
	CategoryPlan  Category = "PLAN"
	CategoryBuilt Category = "BUILT"
)

var (
	ErrTitleRequired    = errors.New("property title is required")
	ErrInvalidCategory  = errors.New("property category must be PLAN or BUILT")
	ErrNegativePrice    = errors.New("property price must not be negative")
	ErrNegativeQuantity = errors.New("property room counts and dimensions must not be negative")
)

// Label returns the human readable category name.
func (c Category) Label() string {
	switch c {
	case CategoryPlan:
		return "House Plan"
	case CategoryBuilt:
		return "Built Home"
	default:
		return string(c)
	}
}

// Valid reports whether the category is known.
func (c Category) Valid() bool {
	return c == CategoryPlan || c == CategoryBuilt
}

// ParseCategory normalizes a category filter value.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Property is a catalog entry: a house plan for sale or a built home.
type Property struct {
	ID                 int64
	Title              string
	Category           Category
	Price              decimal.Decimal
	Bedrooms           int
	Bathrooms          int
	Garage             int
	FloorArea          int
	Levels             int
	Width              decimal.Decimal
	Depth              decimal.Decimal
	Styles             []string
	Features           []string
	Amenities          []string
	Floors             []map[string]any
	RoomSpecifications []map[string]any
	IsNew              bool
	IsPopular          bool
	Description        string
	VideoURL           string
	EnSuite            int
	Lounges            int
	DiningAreas        int
	GarageParking      int
	CoveredParking     int
	PetFriendly        bool
	// Images are ordered references (absolute URLs or media-relative paths).
	Images    []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Normalize applies defaults before validation.
func (p *Property) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	if p.Category == "" {
		p.Category = CategoryPlan
	}
	p.Category = Category(strings.ToUpper(string(p.Category)))
	p.Price = p.Price.Round(2)
	p.Width = p.Width.Round(2)
	p.Depth = p.Depth.Round(2)
}

// Validate enforces catalog invariants.
func (p *Property) Validate() error {
	if p.Title == "" {
		return ErrTitleRequired
	}
	if !p.Category.Valid() {
		return ErrInvalidCategory
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	for _, n := range []int{p.Bedrooms, p.Bathrooms, p.Garage, p.FloorArea, p.Levels, p.EnSuite, p.Lounges, p.DiningAreas, p.GarageParking, p.CoveredParking} {
		if n < 0 {
			return ErrNegativeQuantity
		}
	}
	if p.Width.IsNegative() || p.Depth.IsNegative() {
		return ErrNegativeQuantity
	}
	return nil
}
