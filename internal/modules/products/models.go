package products

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID             string `gorm:"primaryKey;type:char(36)"`
	Name           string
	Slug           string `gorm:"uniqueIndex;size:191"`
	Description    string
	Status         string `gorm:"size:16;index"`
	Featured       bool
	PriceCents     int    `gorm:"column:price_cents"`
	CompareAtCents int    `gorm:"column:compare_at_cents"`
	Currency       string `gorm:"size:3"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Options  []ProductOption `gorm:"foreignKey:ProductID"`
	Variants []Variant       `gorm:"foreignKey:ProductID"`
	Images   []Image         `gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string { return "products" }

// ProductOption is one option axis. Values is a JSON array of strings,
// Swatches a JSON object value -> color token.
type ProductOption struct {
	ID        string `gorm:"primaryKey;type:char(36)"`
	ProductID string `gorm:"type:char(36);index"`
	Name      string
	Position  int
	Values    datatypes.JSON `gorm:"column:values_json"`
	Swatches  datatypes.JSON `gorm:"column:swatches_json"`
	CreatedAt time.Time
}

func (ProductOption) TableName() string { return "product_options" }

// Variant.Options is a JSON object option name -> value.
type Variant struct {
	ID             string         `gorm:"primaryKey;type:char(36)"`
	ProductID      string         `gorm:"type:char(36);index"`
	SKU            string         `gorm:"column:sku;size:64"`
	Options        datatypes.JSON `gorm:"column:options_json"`
	PriceCents     int            `gorm:"column:price_cents"`
	CompareAtCents int            `gorm:"column:compare_at_cents"`
	Currency       string         `gorm:"size:3"`
	Stock          int
	ImageKey       string `gorm:"column:image_key"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Variant) TableName() string { return "product_variants" }

type Image struct {
	ID         string `gorm:"primaryKey;type:char(36)"`
	ProductID  string `gorm:"type:char(36);index"`
	StorageKey string
	URL        string
	Position   int
	CreatedAt  time.Time
}

func (Image) TableName() string { return "product_images" }
