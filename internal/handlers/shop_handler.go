package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/poornima-lanka/artniva/internal/services"
)

// ShopHandler serves the combined storefront listing.
type ShopHandler struct {
	service *services.CatalogService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(service *services.CatalogService) *ShopHandler {
	return &ShopHandler{service: service}
}

// RegisterRoutes registers the shop route with the Fiber app.
func (h *ShopHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/shop", h.HandleShop)
}

// HandleShop returns all artworks and all materials in one payload.
func (h *ShopHandler) HandleShop(c *fiber.Ctx) error {
	listing, err := h.service.Shop()
	if err != nil {
		log.Printf("Error building shop listing: %v", err)
		return respondServiceError(c, "Could not retrieve shop listing", err)
	}
	return c.JSON(listing)
}
