package cart

import "time"

type Cart struct {
	ID        string  `gorm:"primaryKey;type:char(36)"`
	UserID    *string `gorm:"type:char(36);index"`
	Status    string  `gorm:"size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Items []CartItem `gorm:"foreignKey:CartID"`
}

func (Cart) TableName() string { return "carts" }

// CartItem is unique per (cart_id, variant_id); adding the same variant
// again raises the quantity.
type CartItem struct {
	ID        string `gorm:"primaryKey;type:char(36)"`
	CartID    string `gorm:"type:char(36);uniqueIndex:ux_cart_items_cart_variant"`
	ProductID string `gorm:"type:char(36)"`
	VariantID string `gorm:"type:char(36);uniqueIndex:ux_cart_items_cart_variant"`
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItem) TableName() string { return "cart_items" }

const StatusOpen = "open"
