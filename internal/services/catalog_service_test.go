package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
	"github.com/poornima-lanka/artniva/internal/services"
)

func setupCatalogService(t *testing.T) (*services.CatalogService, *repositories.MockCatalogRepository) {
	t.Helper()
	repo := repositories.NewMockCatalogRepository()
	return services.NewCatalogService(repo, nil), repo
}

func TestCatalogService_Create_AppliesCommission(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{
		Kind:     models.KindProduct,
		SellerID: "seller-1",
		Name:     "Morning Landscape",
		Price:    100.0,
		Stock:    3,
	}
	err := service.Create(item)
	assert.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, 80.0, item.SellerEarning)
	assert.Equal(t, 20.0, item.Commission)
}

func TestCatalogService_Create_Validation(t *testing.T) {
	service, _ := setupCatalogService(t)

	err := service.Create(&models.CatalogItem{Kind: "gadget", Name: "X", Price: 10})
	assert.ErrorIs(t, err, services.ErrValidation)

	err = service.Create(&models.CatalogItem{Kind: models.KindProduct, Name: "X", Price: -1})
	assert.ErrorIs(t, err, services.ErrValidation)

	err = service.Create(&models.CatalogItem{Kind: models.KindProduct, Name: "X", Price: 10, Stock: -1})
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCatalogService_Update_RecomputesSplitOnPriceChange(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{
		Kind:     models.KindMaterial,
		SellerID: "seller-1",
		Name:     "Oil Paint Set",
		Price:    100.0,
		Stock:    10,
	}
	assert.NoError(t, service.Create(item))

	updated, err := service.Update(&models.CatalogItem{
		ID:    item.ID,
		Kind:  item.Kind,
		Name:  "Oil Paint Set",
		Price: 200.0,
		Stock: 10,
	})
	assert.NoError(t, err)
	assert.Equal(t, 160.0, updated.SellerEarning)
	assert.Equal(t, 40.0, updated.Commission)

	// Unchanged price keeps the stored split
	updated, err = service.Update(&models.CatalogItem{
		ID:    item.ID,
		Kind:  item.Kind,
		Name:  "Oil Paint Set (restocked)",
		Price: 200.0,
		Stock: 25,
	})
	assert.NoError(t, err)
	assert.Equal(t, 160.0, updated.SellerEarning)
	assert.Equal(t, 40.0, updated.Commission)
	assert.Equal(t, 25, updated.Stock)
	// Ownership and derived rating fields carry over
	assert.Equal(t, "seller-1", updated.SellerID)
}

func TestCatalogService_Update_NotFound(t *testing.T) {
	service, _ := setupCatalogService(t)

	_, err := service.Update(&models.CatalogItem{
		ID:    "missing",
		Kind:  models.KindProduct,
		Name:  "Ghost",
		Price: 10,
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCatalogService_GetByRef_KindMismatch(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{Kind: models.KindProduct, Name: "Etching", Price: 30, Stock: 2}
	assert.NoError(t, service.Create(item))

	// The same ID under the other kind does not resolve
	_, err := service.GetByRef(models.ItemRef{Kind: models.KindMaterial, ID: item.ID})
	assert.ErrorIs(t, err, services.ErrNotFound)

	got, err := service.GetByRef(item.Ref())
	assert.NoError(t, err)
	assert.Equal(t, item.ID, got.ID)
}

func TestCatalogService_Shop(t *testing.T) {
	service, _ := setupCatalogService(t)

	assert.NoError(t, service.Create(&models.CatalogItem{Kind: models.KindProduct, Name: "Painting", Price: 50, Stock: 1}))
	assert.NoError(t, service.Create(&models.CatalogItem{Kind: models.KindMaterial, Name: "Easel", Price: 70, Stock: 4}))
	assert.NoError(t, service.Create(&models.CatalogItem{Kind: models.KindMaterial, Name: "Brush", Price: 5, Stock: 50}))

	listing, err := service.Shop()
	assert.NoError(t, err)
	assert.Len(t, listing.Products, 1)
	assert.Len(t, listing.Materials, 2)
}

func TestCatalogService_ToggleLike_RoundTrip(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{Kind: models.KindProduct, Name: "Seascape", Price: 45, Stock: 2}
	assert.NoError(t, service.Create(item))

	liked, err := service.ToggleLike(item.Ref(), "user-1")
	assert.NoError(t, err)
	assert.True(t, liked.LikedBy("user-1"))
	assert.Len(t, liked.Likes, 1)

	unliked, err := service.ToggleLike(item.Ref(), "user-1")
	assert.NoError(t, err)
	assert.False(t, unliked.LikedBy("user-1"))
	assert.Empty(t, unliked.Likes)
}

func TestCatalogService_LikedItems(t *testing.T) {
	service, _ := setupCatalogService(t)

	first := &models.CatalogItem{Kind: models.KindProduct, Name: "Print A", Price: 20, Stock: 5}
	second := &models.CatalogItem{Kind: models.KindProduct, Name: "Print B", Price: 22, Stock: 5}
	assert.NoError(t, service.Create(first))
	assert.NoError(t, service.Create(second))

	_, err := service.ToggleLike(first.Ref(), "user-1")
	assert.NoError(t, err)

	liked, err := service.LikedItems(models.KindProduct, "user-1")
	assert.NoError(t, err)
	assert.Len(t, liked, 1)
	assert.Equal(t, first.ID, liked[0].ID)
}

func TestCatalogService_AddReview(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{Kind: models.KindProduct, Name: "Still Life", Price: 65, Stock: 1}
	assert.NoError(t, service.Create(item))

	reviewed, err := service.AddReview(item.Ref(), "user-1", "Asha", 4, "Lovely colors")
	assert.NoError(t, err)
	assert.Equal(t, 1, reviewed.NumReviews)
	assert.Equal(t, 4.0, reviewed.Rating)

	reviewed, err = service.AddReview(item.Ref(), "user-2", "Ben", 2, "Smaller than expected")
	assert.NoError(t, err)
	assert.Equal(t, 2, reviewed.NumReviews)
	assert.Equal(t, 3.0, reviewed.Rating)
}

func TestCatalogService_AddReview_DuplicateRejected(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{Kind: models.KindMaterial, Name: "Gesso", Price: 15, Stock: 12}
	assert.NoError(t, service.Create(item))

	_, err := service.AddReview(item.Ref(), "user-1", "Asha", 5, "Great primer")
	assert.NoError(t, err)

	_, err = service.AddReview(item.Ref(), "user-1", "Asha", 1, "Changed my mind")
	assert.ErrorIs(t, err, services.ErrValidation)

	got, err := service.GetByRef(item.Ref())
	assert.NoError(t, err)
	assert.Equal(t, 1, got.NumReviews)
	assert.Equal(t, 5.0, got.Rating)
}

func TestCatalogService_SellerItems(t *testing.T) {
	service, _ := setupCatalogService(t)

	assert.NoError(t, service.Create(&models.CatalogItem{Kind: models.KindProduct, SellerID: "seller-1", Name: "Mine", Price: 10, Stock: 1}))
	assert.NoError(t, service.Create(&models.CatalogItem{Kind: models.KindProduct, SellerID: "seller-2", Name: "Theirs", Price: 10, Stock: 1}))

	mine, err := service.SellerItems(models.KindProduct, "seller-1")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Name)
}

func TestCatalogService_Delete(t *testing.T) {
	service, _ := setupCatalogService(t)

	item := &models.CatalogItem{Kind: models.KindProduct, Name: "To Remove", Price: 10, Stock: 1}
	assert.NoError(t, service.Create(item))

	assert.NoError(t, service.Delete(item.Ref()))
	_, err := service.GetByRef(item.Ref())
	assert.ErrorIs(t, err, services.ErrNotFound)

	err = service.Delete(item.Ref())
	assert.ErrorIs(t, err, services.ErrNotFound)
}
