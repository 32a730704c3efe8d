package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/poornima-lanka/artniva/internal/middleware"
	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/services"
)

// CartHandler handles HTTP requests for the authenticated user's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app. Every cart
// route requires a session.
func (h *CartHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	cart := router.Group("/cart", auth)
	cart.Get("/", h.HandleGetCart)
	cart.Post("/", h.HandleAddItem)
	cart.Put("/:id", h.HandleUpdateQuantity)
	cart.Delete("/:id", h.HandleRemoveItem)
	cart.Delete("/", h.HandleClearCart)
}

// HandleGetCart returns the user's line items; a user without a cart gets an
// empty list.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	items, err := h.service.GetCart(user.ID)
	if err != nil {
		log.Printf("Error getting cart for %s: %v", user.ID, err)
		return respondServiceError(c, "Could not retrieve cart", err)
	}
	return c.JSON(fiber.Map{"items": items})
}

// AddItemRequest is the request body for adding a line item.
type AddItemRequest struct {
	ProductID string          `json:"productId"`
	ItemType  models.ItemKind `json:"itemType"`
	Quantity  int             `json:"quantity"`
}

// HandleAddItem adds a catalog entry to the cart, merging quantities when
// the line already exists.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	user := middleware.CurrentUser(c)
	ref := models.ItemRef{Kind: req.ItemType, ID: req.ProductID}
	cart, err := h.service.AddItem(user.ID, ref, req.Quantity)
	if err != nil {
		return respondServiceError(c, "Could not add item to cart", err)
	}
	return c.JSON(cart)
}

// QuantityRequest is the request body for a line quantity overwrite.
type QuantityRequest struct {
	Quantity int             `json:"quantity"`
	ItemType models.ItemKind `json:"itemType"`
}

// HandleUpdateQuantity overwrites the quantity of the line named by the URL
// id and the body's item type.
func (h *CartHandler) HandleUpdateQuantity(c *fiber.Ctx) error {
	var req QuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}

	user := middleware.CurrentUser(c)
	ref := models.ItemRef{Kind: req.ItemType, ID: c.Params("id")}
	cart, err := h.service.UpdateQuantity(user.ID, ref, req.Quantity)
	if err != nil {
		return respondServiceError(c, "Could not update cart item", err)
	}
	return c.JSON(cart)
}

// HandleRemoveItem removes one line from the cart. The item type comes from
// the body, or from the itemType query parameter as a fallback.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	var req struct {
		ItemType models.ItemKind `json:"itemType"`
	}
	// DELETE bodies are optional; fall back to the query string.
	_ = c.BodyParser(&req)
	if req.ItemType == "" {
		req.ItemType = models.ItemKind(c.Query("itemType"))
	}

	user := middleware.CurrentUser(c)
	ref := models.ItemRef{Kind: req.ItemType, ID: c.Params("id")}
	cart, err := h.service.RemoveItem(user.ID, ref)
	if err != nil {
		return respondServiceError(c, "Could not remove cart item", err)
	}
	return c.JSON(cart)
}

// HandleClearCart empties the user's cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cart, err := h.service.ClearCart(user.ID)
	if err != nil {
		return respondServiceError(c, "Could not clear cart", err)
	}
	return c.JSON(fiber.Map{
		"message": "Cart cleared successfully",
		"cart":    cart,
	})
}
