package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/poornima-lanka/artniva/internal/models"
)

// GORMCatalogRepository is a GORM implementation of CatalogRepository.
type GORMCatalogRepository struct {
	db *gorm.DB
}

// NewGORMCatalogRepository creates a new instance of GORMCatalogRepository.
func NewGORMCatalogRepository(db *gorm.DB) *GORMCatalogRepository {
	return &GORMCatalogRepository{
		db: db,
	}
}

// GetAllByKind retrieves all catalog entries of the given kind.
func (r *GORMCatalogRepository) GetAllByKind(kind models.ItemKind) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Preload("Reviews").Preload("Likes").
		Where("kind = ?", kind).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entries: %w", kind, err)
	}
	return items, nil
}

// GetByRef retrieves a single catalog entry by its tagged reference, with
// reviews and likes loaded.
func (r *GORMCatalogRepository) GetByRef(ref models.ItemRef) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.Preload("Reviews").Preload("Likes").
		First(&item, "id = ? AND kind = ?", ref.ID, ref.Kind).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", ref.Kind, ref.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get %s with ID %s: %w", ref.Kind, ref.ID, err)
	}
	return &item, nil
}

// GetBySeller retrieves entries of the given kind owned by the given seller.
func (r *GORMCatalogRepository) GetBySeller(kind models.ItemKind, sellerID string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Preload("Reviews").Preload("Likes").
		Where("kind = ? AND seller_id = ?", kind, sellerID).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entries for seller %s: %w", kind, sellerID, err)
	}
	return items, nil
}

// GetLikedBy retrieves entries of the given kind liked by the given user.
func (r *GORMCatalogRepository) GetLikedBy(kind models.ItemKind, userID string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.Preload("Reviews").Preload("Likes").
		Joins("JOIN likes ON likes.item_id = catalog_items.id").
		Where("likes.user_id = ? AND catalog_items.kind = ?", userID, kind).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get %s entries liked by %s: %w", kind, userID, err)
	}
	return items, nil
}

// Create creates a new catalog entry.
func (r *GORMCatalogRepository) Create(item *models.CatalogItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.Omit(clause.Associations).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create %s: %w", item.Kind, err)
	}
	return nil
}

// Update updates an existing catalog entry. Reviews and likes are managed
// through AddReview/AddLike/RemoveLike, never rewritten here.
func (r *GORMCatalogRepository) Update(item *models.CatalogItem) error {
	res := r.db.Omit(clause.Associations).Save(item)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s: %w", item.Kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%s with ID %s for update: %w", item.Kind, item.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a catalog entry and its reviews and likes.
func (r *GORMCatalogRepository) Delete(ref models.ItemRef) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.CatalogItem{}, "id = ? AND kind = ?", ref.ID, ref.Kind)
		if res.Error != nil {
			return fmt.Errorf("failed to delete %s: %w", ref.Kind, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%s with ID %s for deletion: %w", ref.Kind, ref.ID, ErrNotFound)
		}
		if err := tx.Delete(&models.Review{}, "item_id = ?", ref.ID).Error; err != nil {
			return fmt.Errorf("failed to delete reviews for %s: %w", ref.ID, err)
		}
		if err := tx.Delete(&models.Like{}, "item_id = ?", ref.ID).Error; err != nil {
			return fmt.Errorf("failed to delete likes for %s: %w", ref.ID, err)
		}
		return nil
	})
}

// AddReview persists a new review row.
func (r *GORMCatalogRepository) AddReview(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// AddLike persists a like row.
func (r *GORMCatalogRepository) AddLike(like models.Like) error {
	if err := r.db.Create(&like).Error; err != nil {
		return fmt.Errorf("failed to create like: %w", err)
	}
	return nil
}

// RemoveLike removes a like row.
func (r *GORMCatalogRepository) RemoveLike(itemID, userID string) error {
	res := r.db.Delete(&models.Like{}, "item_id = ? AND user_id = ?", itemID, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove like: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("like by %s on %s: %w", userID, itemID, ErrNotFound)
	}
	return nil
}
