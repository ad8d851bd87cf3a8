package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&propertyRecord{},
		&propertyImageRecord{},
		&orderRecord{},
		&contactMessageRecord{},
		&quoteRequestRecord{},
	)
}

// Property schema mirrors the catalog Postgres adapter.
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

// Order schema mirrors the orders Postgres adapter. receipt_number is unique so a number is issued at most once.
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

// Contact message schema mirrors the inquiries Postgres adapter.
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
