package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/poornima-lanka/artniva/internal/models"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user ID
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

func copyCart(cart models.Cart) models.Cart {
	cp := cart
	cp.Items = append([]models.CartLine(nil), cart.Items...)
	return cp
}

// GetByUserID returns the user's cart, or ErrNotFound if none exists.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
	}
	cp := copyCart(cart)
	return &cp, nil
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	r.carts[cart.UserID] = copyCart(*cart)
	return nil
}

// Save replaces the stored cart wholesale.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; !ok {
		return fmt.Errorf("cart for user %s: %w", cart.UserID, ErrNotFound)
	}
	r.carts[cart.UserID] = copyCart(*cart)
	return nil
}
