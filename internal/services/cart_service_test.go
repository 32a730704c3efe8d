package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/repositories"
	"github.com/poornima-lanka/artniva/internal/services"
)

func setupCartService(t *testing.T) (*services.CartService, *repositories.MockCatalogRepository) {
	t.Helper()
	cartRepo := repositories.NewMockCartRepository()
	catalogRepo := repositories.NewMockCatalogRepository()
	return services.NewCartService(cartRepo, catalogRepo), catalogRepo
}

func seedItem(t *testing.T, repo *repositories.MockCatalogRepository, kind models.ItemKind, name string, price float64, stock int) models.ItemRef {
	t.Helper()
	item := &models.CatalogItem{
		Kind:     kind,
		SellerID: "seller-1",
		Name:     name,
		ImageURL: "/uploads/" + name + ".jpg",
		Price:    price,
		Stock:    stock,
	}
	err := repo.Create(item)
	assert.NoError(t, err)
	return item.Ref()
}

func TestCartService_GetCart_EmptyForNewUser(t *testing.T) {
	service, _ := setupCartService(t)

	items, err := service.GetCart("user-without-cart")
	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestCartService_AddItem(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Sunset Oil Painting", 120.0, 5)

	cart, err := service.AddItem("user-1", ref, 2)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, ref.ID, cart.Items[0].ItemID)
	assert.Equal(t, models.KindProduct, cart.Items[0].ItemKind)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	// Line snapshots the catalog entry at add time
	assert.Equal(t, "Sunset Oil Painting", cart.Items[0].Name)
	assert.Equal(t, 120.0, cart.Items[0].Price)

	items, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindMaterial, "Sable Brush Set", 35.0, 10)

	_, err := service.AddItem("user-1", ref, 2)
	assert.NoError(t, err)
	cart, err := service.AddItem("user-1", ref, 3)
	assert.NoError(t, err)

	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestCartService_AddItem_SameIDDifferentKind(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	product := seedItem(t, catalogRepo, models.KindProduct, "Canvas Print", 60.0, 8)
	material := seedItem(t, catalogRepo, models.KindMaterial, "Blank Canvas", 12.0, 20)

	_, err := service.AddItem("user-1", product, 1)
	assert.NoError(t, err)
	cart, err := service.AddItem("user-1", material, 1)
	assert.NoError(t, err)

	// Different kinds never merge, even for a user with both in the cart
	assert.Len(t, cart.Items, 2)
}

func TestCartService_AddItem_Validation(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Watercolor Set", 45.0, 5)

	_, err := service.AddItem("user-1", models.ItemRef{Kind: models.KindProduct}, 1)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.AddItem("user-1", ref, 0)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.AddItem("user-1", ref, -2)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.AddItem("user-1", models.ItemRef{Kind: "gadget", ID: ref.ID}, 1)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = service.AddItem("user-1", models.ItemRef{Kind: models.KindProduct, ID: "missing"}, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_AddItem_StockExceeded(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Limited Print", 80.0, 5)

	_, err := service.AddItem("user-1", ref, 6)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "not enough stock for Limited Print")

	// Fresh add within stock succeeds, a merge pushing past stock fails
	_, err = service.AddItem("user-1", ref, 3)
	assert.NoError(t, err)
	_, err = service.AddItem("user-1", ref, 3)
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Contains(t, err.Error(), "total requested: 6")

	// The failed merge left the stored line untouched
	items, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestCartService_StockIsAdvisory(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Popular Print", 30.0, 5)

	// Two users can each claim the full stock; nothing is decremented
	_, err := service.AddItem("user-1", ref, 5)
	assert.NoError(t, err)
	_, err = service.AddItem("user-2", ref, 5)
	assert.NoError(t, err)

	item, err := catalogRepo.GetByRef(ref)
	assert.NoError(t, err)
	assert.Equal(t, 5, item.Stock)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Framed Sketch", 55.0, 5)

	_, err := service.AddItem("user-1", ref, 3)
	assert.NoError(t, err)

	cart, err := service.UpdateQuantity("user-1", ref, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Overwrite, not add: stock 5 permits quantity 5 even on a line at 3
	_, err = service.UpdateQuantity("user-1", ref, 6)
	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestCartService_UpdateQuantity_RejectsZero(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Charcoal Study", 25.0, 5)

	_, err := service.AddItem("user-1", ref, 2)
	assert.NoError(t, err)

	// Zero is a validation failure, never an implicit removal
	_, err = service.UpdateQuantity("user-1", ref, 0)
	assert.ErrorIs(t, err, services.ErrValidation)

	items, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartService_UpdateQuantity_MissingLine(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	inCart := seedItem(t, catalogRepo, models.KindProduct, "Ink Drawing", 40.0, 5)
	other := seedItem(t, catalogRepo, models.KindMaterial, "Ink Bottle", 8.0, 30)

	_, err := service.UpdateQuantity("user-1", inCart, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = service.AddItem("user-1", inCart, 1)
	assert.NoError(t, err)
	_, err = service.UpdateQuantity("user-1", other, 1)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_RemoveItem(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	first := seedItem(t, catalogRepo, models.KindProduct, "Abstract Piece", 90.0, 5)
	second := seedItem(t, catalogRepo, models.KindMaterial, "Palette Knife", 6.0, 40)

	_, err := service.AddItem("user-1", first, 2)
	assert.NoError(t, err)
	_, err = service.AddItem("user-1", second, 1)
	assert.NoError(t, err)

	cart, err := service.RemoveItem("user-1", first)
	assert.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, second.ID, cart.Items[0].ItemID)

	_, err = service.RemoveItem("user-1", first)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartService_ClearCart(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Portrait Commission", 200.0, 3)

	_, err := service.ClearCart("user-1")
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = service.AddItem("user-1", ref, 2)
	assert.NoError(t, err)

	cart, err := service.ClearCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	items, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}

// The add/merge/update/remove lifecycle against a single entry with stock 5.
func TestCartService_Lifecycle(t *testing.T) {
	service, catalogRepo := setupCartService(t)
	ref := seedItem(t, catalogRepo, models.KindProduct, "Gallery Print", 75.0, 5)

	_, err := service.AddItem("user-1", ref, 3)
	assert.NoError(t, err)

	_, err = service.AddItem("user-1", ref, 3)
	assert.ErrorIs(t, err, services.ErrValidation)

	cart, err := service.UpdateQuantity("user-1", ref, 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	cart, err = service.RemoveItem("user-1", ref)
	assert.NoError(t, err)
	assert.Empty(t, cart.Items)

	items, err := service.GetCart("user-1")
	assert.NoError(t, err)
	assert.Empty(t, items)
}
