package models

import "time"

// Cart holds a user's pending line items. One cart per user, created lazily
// on the first add-to-cart call.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"userId" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartLine `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartLine is one entry in a cart: a tagged reference to a catalog entry plus
// a denormalized snapshot of its name/image/price taken at add time. Lines are
// unique per (item, kind) within a cart; a second add merges quantities.
type CartLine struct {
	LineID   uint     `json:"-" gorm:"primaryKey"`
	CartID   string   `json:"-" gorm:"uniqueIndex:idx_cart_line;type:varchar(36)"`
	ItemID   string   `json:"productId" gorm:"uniqueIndex:idx_cart_line;type:varchar(36)"`
	ItemKind ItemKind `json:"itemType" gorm:"uniqueIndex:idx_cart_line;type:varchar(16)"`
	Name     string   `json:"name"`
	ImageURL string   `json:"imageUrl"`
	Price    float64  `json:"price"`
	Quantity int      `json:"quantity"`
}

// Line returns the line matching ref, or nil if the cart has none.
func (c *Cart) Line(ref ItemRef) *CartLine {
	for idx := range c.Items {
		if c.Items[idx].ItemID == ref.ID && c.Items[idx].ItemKind == ref.Kind {
			return &c.Items[idx]
		}
	}
	return nil
}
