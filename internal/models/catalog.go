package models

import "time"

// ItemKind tags which catalog variant an entry belongs to. Cart lines and
// like/review targets reference catalog entries generically through it.
type ItemKind string

const (
	KindProduct  ItemKind = "product"  // artworks
	KindMaterial ItemKind = "material" // art supplies
)

// Valid reports whether k is one of the two recognized catalog variants.
func (k ItemKind) Valid() bool {
	return k == KindProduct || k == KindMaterial
}

// ItemRef is a tagged reference to a catalog entry.
type ItemRef struct {
	Kind ItemKind `json:"kind"`
	ID   string   `json:"id"`
}

// CatalogItem is a sellable entry, either a product (artwork) or a material
// (art supply). Both variants share this shape and are distinguished by Kind.
type CatalogItem struct {
	ID          string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Kind        ItemKind `json:"kind" gorm:"index;type:varchar(16)" validate:"required,oneof=product material"`
	SellerID    string   `json:"sellerId" gorm:"index;type:varchar(36)"`
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category" validate:"required"`
	ImageURL    string   `json:"imageUrl"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`

	// Derived fields. Rating is the arithmetic mean of all review ratings and
	// NumReviews the review count, recomputed on every review insert.
	// SellerEarning and Commission are the fixed 80/20 price split, recomputed
	// only when the price is set or changed.
	Rating        float64 `json:"rating"`
	NumReviews    int     `json:"numReviews"`
	SellerEarning float64 `json:"sellerEarning"`
	Commission    float64 `json:"commission"`

	Reviews []Review `json:"reviews" gorm:"foreignKey:ItemID"`
	Likes   []Like   `json:"likes" gorm:"foreignKey:ItemID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Ref returns the tagged reference for this entry.
func (i *CatalogItem) Ref() ItemRef {
	return ItemRef{Kind: i.Kind, ID: i.ID}
}

// LikedBy reports whether the given user is in the like set.
func (i *CatalogItem) LikedBy(userID string) bool {
	for _, l := range i.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// ReviewedBy reports whether the given user already reviewed this entry.
func (i *CatalogItem) ReviewedBy(userID string) bool {
	for _, r := range i.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// Review is one user's rating and comment on a catalog entry. Immutable once
// created; a user may submit at most one per entry.
type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ItemID    string    `json:"-" gorm:"uniqueIndex:idx_item_reviewer;type:varchar(36)"`
	UserID    string    `json:"user" gorm:"uniqueIndex:idx_item_reviewer;type:varchar(36)"`
	Name      string    `json:"name"` // reviewer name snapshot
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like marks one user liking one catalog entry. The composite key gives the
// like list set semantics.
type Like struct {
	ItemID string `json:"-" gorm:"primaryKey;type:varchar(36)"`
	UserID string `json:"user" gorm:"primaryKey;type:varchar(36)"`
}
