package repositories

import (
	"github.com/poornima-lanka/artniva/internal/models"
)

// CatalogRepository defines the interface for catalog data access. Products
// and materials share one store; lookups resolve through the tagged ItemRef.
type CatalogRepository interface {
	GetAllByKind(kind models.ItemKind) ([]models.CatalogItem, error)
	GetByRef(ref models.ItemRef) (*models.CatalogItem, error)
	GetBySeller(kind models.ItemKind, sellerID string) ([]models.CatalogItem, error)
	GetLikedBy(kind models.ItemKind, userID string) ([]models.CatalogItem, error)
	Create(item *models.CatalogItem) error
	Update(item *models.CatalogItem) error
	Delete(ref models.ItemRef) error
	AddReview(review *models.Review) error
	AddLike(like models.Like) error
	RemoveLike(itemID, userID string) error
}
