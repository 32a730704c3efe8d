package repositories

import "github.com/poornima-lanka/artniva/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByResetToken(tokenHash string) (*models.User, error)
	GetAll() ([]models.User, error)
	Update(user *models.User) error
	Delete(id string) error
	CountByRole(role string) (int64, error)
	CountSellers(verified bool) (int64, error)
}
