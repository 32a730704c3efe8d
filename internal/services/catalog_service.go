package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
)

// CommissionRate is the fixed share of every sale kept by the marketplace.
// The seller receives the remaining 80%.
const CommissionRate = 0.20

// ShopListing is the combined catalog payload: all artworks and all
// materials in one response.
type ShopListing struct {
	Products  []models.CatalogItem `json:"products"`
	Materials []models.CatalogItem `json:"materials"`
}

// CatalogService handles business logic for both catalog variants: listing,
// seller CRUD with the commission split, likes and reviews.
type CatalogService struct {
	repo   repositories.CatalogRepository
	events EventPublisher
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo repositories.CatalogRepository, events EventPublisher) *CatalogService {
	return &CatalogService{
		repo:   repo,
		events: events,
	}
}

// ListByKind retrieves all catalog entries of one variant.
func (s *CatalogService) ListByKind(kind models.ItemKind) ([]models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid item kind %q: %w", kind, ErrValidation)
	}
	return s.repo.GetAllByKind(kind)
}

// GetByRef retrieves a single catalog entry by its tagged reference.
func (s *CatalogService) GetByRef(ref models.ItemRef) (*models.CatalogItem, error) {
	if !ref.Kind.Valid() {
		return nil, fmt.Errorf("invalid item kind %q: %w", ref.Kind, ErrValidation)
	}
	item, err := s.repo.GetByRef(ref)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%s with ID %s: %w", ref.Kind, ref.ID, ErrNotFound)
		}
		return nil, err
	}
	return item, nil
}

// Shop retrieves the combined listing of both catalog variants.
func (s *CatalogService) Shop() (*ShopListing, error) {
	products, err := s.repo.GetAllByKind(models.KindProduct)
	if err != nil {
		return nil, err
	}
	materials, err := s.repo.GetAllByKind(models.KindMaterial)
	if err != nil {
		return nil, err
	}
	return &ShopListing{Products: products, Materials: materials}, nil
}

// SellerItems retrieves the entries of one variant owned by the given seller.
func (s *CatalogService) SellerItems(kind models.ItemKind, sellerID string) ([]models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid item kind %q: %w", kind, ErrValidation)
	}
	return s.repo.GetBySeller(kind, sellerID)
}

// LikedItems retrieves the entries of one variant the given user has liked.
func (s *CatalogService) LikedItems(kind models.ItemKind, userID string) ([]models.CatalogItem, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid item kind %q: %w", kind, ErrValidation)
	}
	return s.repo.GetLikedBy(kind, userID)
}

// Create creates a new catalog entry owned by the given seller, deriving the
// seller earning and marketplace commission from the price.
func (s *CatalogService) Create(item *models.CatalogItem) error {
	if !item.Kind.Valid() {
		return fmt.Errorf("invalid item kind %q: %w", item.Kind, ErrValidation)
	}
	if item.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if item.Stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", ErrValidation)
	}
	applyCommission(item)

	if err := s.repo.Create(item); err != nil {
		return err
	}
	s.publish("catalog.created", map[string]interface{}{
		"itemID":   item.ID,
		"kind":     string(item.Kind),
		"sellerID": item.SellerID,
		"price":    item.Price,
	})
	return nil
}

// Update updates an existing catalog entry. The earning/commission split is
// recomputed only when the price actually changed; the derived rating fields
// are always carried over from the stored entry.
func (s *CatalogService) Update(item *models.CatalogItem) (*models.CatalogItem, error) {
	existing, err := s.GetByRef(item.Ref())
	if err != nil {
		return nil, err
	}
	if item.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", ErrValidation)
	}
	if item.Stock < 0 {
		return nil, fmt.Errorf("stock must not be negative: %w", ErrValidation)
	}

	if item.Price != existing.Price {
		applyCommission(item)
	} else {
		item.SellerEarning = existing.SellerEarning
		item.Commission = existing.Commission
	}
	item.SellerID = existing.SellerID
	item.Rating = existing.Rating
	item.NumReviews = existing.NumReviews
	item.CreatedAt = existing.CreatedAt

	if err := s.repo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete deletes a catalog entry.
func (s *CatalogService) Delete(ref models.ItemRef) error {
	if !ref.Kind.Valid() {
		return fmt.Errorf("invalid item kind %q: %w", ref.Kind, ErrValidation)
	}
	if err := s.repo.Delete(ref); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("%s with ID %s: %w", ref.Kind, ref.ID, ErrNotFound)
		}
		return err
	}
	return nil
}

// ToggleLike flips the given user's membership in the entry's like set and
// returns the updated entry. Toggling twice restores the original state.
func (s *CatalogService) ToggleLike(ref models.ItemRef, userID string) (*models.CatalogItem, error) {
	item, err := s.GetByRef(ref)
	if err != nil {
		return nil, err
	}

	if item.LikedBy(userID) {
		err = s.repo.RemoveLike(item.ID, userID)
	} else {
		err = s.repo.AddLike(models.Like{ItemID: item.ID, UserID: userID})
	}
	if err != nil {
		return nil, err
	}
	return s.GetByRef(ref)
}

// AddReview appends a review by the given user and recomputes the entry's
// aggregate rating as the plain mean of all review ratings. A second review
// from the same user is rejected.
func (s *CatalogService) AddReview(ref models.ItemRef, userID, userName string, rating float64, comment string) (*models.CatalogItem, error) {
	item, err := s.GetByRef(ref)
	if err != nil {
		return nil, err
	}
	if item.ReviewedBy(userID) {
		return nil, fmt.Errorf("%s already reviewed: %w", ref.Kind, ErrValidation)
	}

	review := models.Review{
		ItemID:    item.ID,
		UserID:    userID,
		Name:      userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddReview(&review); err != nil {
		return nil, err
	}

	sum := rating
	for _, r := range item.Reviews {
		sum += r.Rating
	}
	item.NumReviews = len(item.Reviews) + 1
	item.Rating = sum / float64(item.NumReviews)
	if err := s.repo.Update(item); err != nil {
		return nil, err
	}

	s.publish("review.added", map[string]interface{}{
		"itemID": item.ID,
		"kind":   string(item.Kind),
		"userID": userID,
		"rating": rating,
	})
	return s.GetByRef(ref)
}

// publish sends a domain event when a broker is configured. Failures are
// logged and swallowed; events never fail the request.
func (s *CatalogService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishEvent(event, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}

// applyCommission derives the fixed 80/20 price split.
func applyCommission(item *models.CatalogItem) {
	item.SellerEarning = round2(item.Price * (1 - CommissionRate))
	item.Commission = round2(item.Price * CommissionRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
