package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/cedrichouse/houseplans-api/internal/domains/catalog/domain"
)

// Property is the JSON shape served to the storefront.
type Property struct {
	ID                 int64            `json:"id"`
	Title              string           `json:"title" binding:"required"`
	Category           string           `json:"category"`
	CategoryDisplay    string           `json:"category_display,omitempty"`
	Price              decimal.Decimal  `json:"price"`
	Bedrooms           int              `json:"bedrooms" binding:"gte=0"`
	Bathrooms          int              `json:"bathrooms" binding:"gte=0"`
	Garage             int              `json:"garage" binding:"gte=0"`
	FloorArea          int              `json:"floor_area" binding:"gte=0"`
	Levels             int              `json:"levels" binding:"gte=0"`
	Width              decimal.Decimal  `json:"width"`
	Depth              decimal.Decimal  `json:"depth"`
	Styles             []string         `json:"styles"`
	Features           []string         `json:"features"`
	Amenities          []string         `json:"amenities"`
	Floors             []map[string]any `json:"floors"`
	RoomSpecifications []map[string]any `json:"room_specifications"`
	IsNew              bool             `json:"is_new"`
	IsPopular          bool             `json:"is_popular"`
	Description        string           `json:"description"`
	VideoURL           string           `json:"video_url"`
	EnSuite            int              `json:"en_suite"`
	Lounges            int              `json:"lounges"`
	DiningAreas        int              `json:"dining_areas"`
	GarageParking      int              `json:"garage_parking"`
	CoveredParking     int              `json:"covered_parking"`
	PetFriendly        bool             `json:"pet_friendly"`
	ImageURLs          []string         `json:"image_urls"`
	CreatedAt          *time.Time       `json:"created_at,omitempty"`
	UpdatedAt          *time.Time       `json:"updated_at,omitempty"`
}

// ToDomainProperty converts a transport property into the catalog domain model.
func ToDomainProperty(p Property) *catalogdomain.Property {
	return &catalogdomain.Property{
		Title:              p.Title,
		Category:           catalogdomain.Category(p.Category),
		Price:              p.Price,
		Bedrooms:           p.Bedrooms,
		Bathrooms:          p.Bathrooms,
		Garage:             p.Garage,
		FloorArea:          p.FloorArea,
		Levels:             p.Levels,
		Width:              p.Width,
		Depth:              p.Depth,
		Styles:             p.Styles,
		Features:           p.Features,
		Amenities:          p.Amenities,
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
		Images:             p.ImageURLs,
	}
}

// FromDomainProperty converts a domain property to the transport representation.
// resolve turns stored image references into absolute URLs.
func FromDomainProperty(p *catalogdomain.Property, resolve func(string) string) Property {
	if p == nil {
		return Property{}
	}
	urls := make([]string, 0, len(p.Images))
	for _, ref := range p.Images {
		if resolve != nil {
			ref = resolve(ref)
		}
		urls = append(urls, ref)
	}
	out := Property{
		ID:                 p.ID,
		Title:              p.Title,
		Category:           string(p.Category),
		CategoryDisplay:    p.Category.Label(),
		Price:              p.Price,
		Bedrooms:           p.Bedrooms,
		Bathrooms:          p.Bathrooms,
		Garage:             p.Garage,
		FloorArea:          p.FloorArea,
		Levels:             p.Levels,
		Width:              p.Width,
		Depth:              p.Depth,
		Styles:             nonNil(p.Styles),
		Features:           nonNil(p.Features),
		Amenities:          nonNil(p.Amenities),
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
		ImageURLs:          urls,
	}
	if !p.CreatedAt.IsZero() {
		created, updated := p.CreatedAt, p.UpdatedAt
		out.CreatedAt, out.UpdatedAt = &created, &updated
	}
	return out
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
