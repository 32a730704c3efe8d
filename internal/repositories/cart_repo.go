package repositories

import (
	"github.com/poornima-lanka/artniva/internal/models"
)

// CartRepository defines the interface for cart data access. Save rewrites
// the line list wholesale, so a failed multi-step mutation never leaves a
// partially written cart behind.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
}
