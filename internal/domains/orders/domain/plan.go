package domain

import "github.com/shopspring/decimal"

// Plan is the read-only view of a catalog property as seen by checkout.
type Plan struct {
	ID            int64
	Title         string
	Category      string
	CategoryLabel string
	Price         decimal.Decimal
	Bedrooms      int
	Bathrooms     int
	Garage        int
	FloorArea     int
	Levels        int
	Width         decimal.Decimal
	Depth         decimal.Decimal
	Styles        []string
	Images        []string
}

// LeadImage returns the first image reference, if any.
func (p Plan) LeadImage() (string, bool) {
	if len(p.Images) == 0 || p.Images[0] == "" {
		return "", false
	}
	return p.Images[0], true
}

// HeadlineStyles returns at most the first n style tags.
func (p Plan) HeadlineStyles(n int) []string {
	if n <= 0 || len(p.Styles) == 0 {
		return nil
	}
	if len(p.Styles) < n {
		n = len(p.Styles)
	}
	return append([]string{}, p.Styles[:n]...)
}
