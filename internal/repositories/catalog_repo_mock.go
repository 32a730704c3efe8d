package repositories

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/poornima-lanka/artniva/internal/models"
)

// MockCatalogRepository is an in-memory implementation of CatalogRepository.
type MockCatalogRepository struct {
	items map[string]models.CatalogItem
	mu    sync.RWMutex
}

// NewMockCatalogRepository creates a new instance of MockCatalogRepository.
func NewMockCatalogRepository() *MockCatalogRepository {
	return &MockCatalogRepository{
		items: make(map[string]models.CatalogItem),
	}
}

// copyItem returns a deep copy so callers cannot mutate stored state.
func copyItem(item models.CatalogItem) models.CatalogItem {
	cp := item
	cp.Reviews = append([]models.Review(nil), item.Reviews...)
	cp.Likes = append([]models.Like(nil), item.Likes...)
	return cp
}

// GetAllByKind returns all entries of the given kind.
func (r *MockCatalogRepository) GetAllByKind(kind models.ItemKind) ([]models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.CatalogItem, 0)
	for _, item := range r.items {
		if item.Kind == kind {
			itemList = append(itemList, copyItem(item))
		}
	}
	return itemList, nil
}

// GetByRef returns an entry by its tagged reference.
func (r *MockCatalogRepository) GetByRef(ref models.ItemRef) (*models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[ref.ID]
	if !ok || item.Kind != ref.Kind {
		return nil, fmt.Errorf("%s with ID %s: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	cp := copyItem(item)
	return &cp, nil
}

// GetBySeller returns entries of the given kind owned by the given seller.
func (r *MockCatalogRepository) GetBySeller(kind models.ItemKind, sellerID string) ([]models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.CatalogItem, 0)
	for _, item := range r.items {
		if item.Kind == kind && item.SellerID == sellerID {
			itemList = append(itemList, copyItem(item))
		}
	}
	return itemList, nil
}

// GetLikedBy returns entries of the given kind liked by the given user.
func (r *MockCatalogRepository) GetLikedBy(kind models.ItemKind, userID string) ([]models.CatalogItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itemList := make([]models.CatalogItem, 0)
	for _, item := range r.items {
		if item.Kind == kind && item.LikedBy(userID) {
			itemList = append(itemList, copyItem(item))
		}
	}
	return itemList, nil
}

// Create adds a new entry.
func (r *MockCatalogRepository) Create(item *models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items[item.ID] = copyItem(*item)
	return nil
}

// Update modifies an existing entry, leaving its reviews and likes alone.
func (r *MockCatalogRepository) Update(item *models.CatalogItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok {
		return fmt.Errorf("%s with ID %s for update: %w", item.Kind, item.ID, ErrNotFound)
	}
	cp := copyItem(*item)
	cp.Reviews = stored.Reviews
	cp.Likes = stored.Likes
	r.items[item.ID] = cp
	return nil
}

// Delete removes an entry by its tagged reference.
func (r *MockCatalogRepository) Delete(ref models.ItemRef) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[ref.ID]
	if !ok || item.Kind != ref.Kind {
		return fmt.Errorf("%s with ID %s for deletion: %w", ref.Kind, ref.ID, ErrNotFound)
	}
	delete(r.items, ref.ID)
	return nil
}

// AddReview appends a review to the stored entry.
func (r *MockCatalogRepository) AddReview(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[review.ItemID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", review.ItemID, ErrNotFound)
	}
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	item.Reviews = append(item.Reviews, *review)
	r.items[review.ItemID] = item
	return nil
}

// AddLike appends a like to the stored entry.
func (r *MockCatalogRepository) AddLike(like models.Like) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[like.ItemID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", like.ItemID, ErrNotFound)
	}
	item.Likes = append(item.Likes, like)
	r.items[like.ItemID] = item
	return nil
}

// RemoveLike removes a like from the stored entry.
func (r *MockCatalogRepository) RemoveLike(itemID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("item with ID %s: %w", itemID, ErrNotFound)
	}
	kept := item.Likes[:0:0]
	for _, l := range item.Likes {
		if l.UserID != userID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(item.Likes) {
		return fmt.Errorf("like by %s on %s: %w", userID, itemID, ErrNotFound)
	}
	item.Likes = kept
	r.items[itemID] = item
	return nil
}
