package services

import (
	"errors"
	"fmt"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
)

// CartService handles business logic for the shopping cart. Every mutation
// re-reads the cart, edits the line list in memory and writes it back
// wholesale, so a validation failure part-way through discards the in-memory
// edit and leaves the stored cart untouched. Stock checks are advisory: they
// read the catalog entry's stock at validation time, and nothing decrements
// stock when lines are added (there is no checkout flow).
type CartService struct {
	cartRepo    repositories.CartRepository
	catalogRepo repositories.CatalogRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, catalogRepo repositories.CatalogRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		catalogRepo: catalogRepo,
	}
}

// GetCart returns the user's line items. A user with no cart gets an empty
// list, never an error.
func (s *CartService) GetCart(userID string) ([]models.CartLine, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.CartLine{}, nil
		}
		return nil, err
	}
	if cart.Items == nil {
		return []models.CartLine{}, nil
	}
	return cart.Items, nil
}

// AddItem adds quantity of the referenced catalog entry to the user's cart,
// merging into an existing line when one matches the (item, kind) pair. The
// cart is created lazily on the first add.
func (s *CartService) AddItem(userID string, ref models.ItemRef, quantity int) (*models.Cart, error) {
	if ref.ID == "" {
		return nil, fmt.Errorf("item ID is required: %w", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive number: %w", ErrValidation)
	}
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("invalid item type %q, must be %q or %q: %w",
			ref.Kind, models.KindProduct, models.KindMaterial, ErrValidation)
	}

	item, err := s.catalogRepo.GetByRef(ref)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", ref.Kind, ref.ID, ErrNotFound)
		}
		return nil, err
	}
	if item.Stock < quantity {
		return nil, fmt.Errorf("not enough stock for %s, available: %d: %w",
			item.Name, item.Stock, ErrValidation)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		cart = &models.Cart{
			UserID: userID,
			Items:  []models.CartLine{newLine(ref, item, quantity)},
		}
		if err := s.cartRepo.Create(cart); err != nil {
			return nil, err
		}
		return cart, nil
	}

	if line := cart.Line(ref); line != nil {
		total := line.Quantity + quantity
		if item.Stock < total {
			return nil, fmt.Errorf("adding %d would exceed stock for %s, total requested: %d, available: %d: %w",
				quantity, item.Name, total, item.Stock, ErrValidation)
		}
		line.Quantity = total
	} else {
		cart.Items = append(cart.Items, newLine(ref, item, quantity))
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity overwrites the quantity of an existing line. Zero or
// negative quantities are rejected, never treated as removal.
func (s *CartService) UpdateQuantity(userID string, ref models.ItemRef, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be a positive number: %w", ErrValidation)
	}
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("invalid item type %q: %w", ref.Kind, ErrValidation)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	line := cart.Line(ref)
	if line == nil {
		return nil, fmt.Errorf("item %s not in cart: %w", ref.ID, ErrNotFound)
	}

	item, err := s.catalogRepo.GetByRef(ref)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", ref.Kind, ref.ID, ErrNotFound)
		}
		return nil, err
	}
	if item.Stock < quantity {
		return nil, fmt.Errorf("not enough stock for %s, available: %d: %w",
			item.Name, item.Stock, ErrValidation)
	}

	line.Quantity = quantity
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem filters the matching line out of the cart.
func (s *CartService) RemoveItem(userID string, ref models.ItemRef) (*models.Cart, error) {
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("invalid item type %q: %w", ref.Kind, ErrValidation)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	kept := make([]models.CartLine, 0, len(cart.Items))
	for _, l := range cart.Items {
		if l.ItemID == ref.ID && l.ItemKind == ref.Kind {
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == len(cart.Items) {
		return nil, fmt.Errorf("item %s not in cart: %w", ref.ID, ErrNotFound)
	}

	cart.Items = kept
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the user's cart.
func (s *CartService) ClearCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("cart for user %s: %w", userID, ErrNotFound)
		}
		return nil, err
	}

	cart.Items = []models.CartLine{}
	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// newLine builds a cart line snapshotting the catalog entry's name, image
// and price at this instant.
func newLine(ref models.ItemRef, item *models.CatalogItem, quantity int) models.CartLine {
	return models.CartLine{
		ItemID:   ref.ID,
		ItemKind: ref.Kind,
		Name:     item.Name,
		ImageURL: item.ImageURL,
		Price:    item.Price,
		Quantity: quantity,
	}
}
