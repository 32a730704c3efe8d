package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/poornima-lanka/artniva/internal/middleware"
	"github.com/poornima-lanka/artniva/internal/models"
	"github.com/poornima-lanka/artniva/internal/services"
)

// CatalogHandler handles HTTP requests for one catalog variant. The same
// handler serves /api/products and /api/materials; the kind it was built
// with tags every lookup.
type CatalogHandler struct {
	service  *services.CatalogService
	kind     models.ItemKind
	uploads  *UploadStore
	validate *validator.Validate
}

// NewCatalogHandler creates a CatalogHandler for the given variant.
func NewCatalogHandler(service *services.CatalogService, kind models.ItemKind, uploads *UploadStore) *CatalogHandler {
	return &CatalogHandler{
		service:  service,
		kind:     kind,
		uploads:  uploads,
		validate: validator.New(),
	}
}

func (h *CatalogHandler) prefix() string {
	if h.kind == models.KindMaterial {
		return "materials"
	}
	return "products"
}

func (h *CatalogHandler) ref(id string) models.ItemRef {
	return models.ItemRef{Kind: h.kind, ID: id}
}

// RegisterRoutes registers this variant's routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	seller := middleware.SellerRequired()
	group := router.Group("/" + h.prefix())

	group.Get("/", h.HandleList)
	group.Get("/mine", auth, seller, h.HandleMine)
	group.Get("/liked", auth, h.HandleLiked)
	group.Get("/:id", h.HandleGetByID)
	group.Post("/", auth, seller, h.HandleCreate)
	group.Put("/:id", auth, seller, h.HandleUpdate)
	group.Delete("/:id", auth, seller, h.HandleDelete)
	group.Post("/:id/like", auth, h.HandleToggleLike)
	group.Post("/:id/reviews", auth, h.HandleAddReview)
}

// HandleList returns all entries of this variant.
func (h *CatalogHandler) HandleList(c *fiber.Ctx) error {
	items, err := h.service.ListByKind(h.kind)
	if err != nil {
		log.Printf("Error listing %s: %v", h.prefix(), err)
		return respondServiceError(c, "Could not retrieve listing", err)
	}
	return c.JSON(items)
}

// HandleGetByID returns a single entry.
func (h *CatalogHandler) HandleGetByID(c *fiber.Ctx) error {
	item, err := h.service.GetByRef(h.ref(c.Params("id")))
	if err != nil {
		return respondServiceError(c, "Could not retrieve item", err)
	}
	return c.JSON(item)
}

// HandleMine returns the authenticated seller's own entries.
func (h *CatalogHandler) HandleMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	items, err := h.service.SellerItems(h.kind, user.ID)
	if err != nil {
		return respondServiceError(c, "Could not retrieve seller items", err)
	}
	return c.JSON(items)
}

// HandleLiked returns the entries the authenticated user has liked.
func (h *CatalogHandler) HandleLiked(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	items, err := h.service.LikedItems(h.kind, user.ID)
	if err != nil {
		return respondServiceError(c, "Could not retrieve liked items", err)
	}
	return c.JSON(items)
}

// CatalogItemRequest is the request body for creating or updating an entry.
// It arrives either as JSON or as a multipart form carrying an image file.
type CatalogItemRequest struct {
	Name        string  `json:"name" form:"name" validate:"required,min=2,max=100"`
	Description string  `json:"description" form:"description" validate:"omitempty,max=2000"`
	Brand       string  `json:"brand" form:"brand"`
	Category    string  `json:"category" form:"category" validate:"required"`
	Price       float64 `json:"price" form:"price" validate:"gte=0"`
	Stock       int     `json:"stock" form:"stock" validate:"gte=0"`
	ImageURL    string  `json:"imageUrl" form:"imageUrl"`
}

// imagePath resolves the image for a create/update: an uploaded file wins
// over a path string in the body.
func (h *CatalogHandler) imagePath(c *fiber.Ctx, req *CatalogItemRequest) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return req.ImageURL, nil
	}
	return h.uploads.SaveImage(c, file)
}

// HandleCreate creates a new entry owned by the authenticated seller.
func (h *CatalogHandler) HandleCreate(c *fiber.Ctx) error {
	var req CatalogItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	image, err := h.imagePath(c, &req)
	if err != nil {
		return respondServiceError(c, "Could not store image", err)
	}

	user := middleware.CurrentUser(c)
	item := models.CatalogItem{
		Kind:        h.kind,
		SellerID:    user.ID,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		ImageURL:    image,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	if err := h.service.Create(&item); err != nil {
		log.Printf("Error creating %s: %v", h.kind, err)
		return respondServiceError(c, "Could not create item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdate updates an existing entry.
func (h *CatalogHandler) HandleUpdate(c *fiber.Ctx) error {
	var req CatalogItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	image, err := h.imagePath(c, &req)
	if err != nil {
		return respondServiceError(c, "Could not store image", err)
	}

	item := models.CatalogItem{
		ID:          c.Params("id"),
		Kind:        h.kind,
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		Category:    req.Category,
		ImageURL:    image,
		Price:       req.Price,
		Stock:       req.Stock,
	}
	updated, err := h.service.Update(&item)
	if err != nil {
		return respondServiceError(c, "Could not update item", err)
	}
	return c.JSON(updated)
}

// HandleDelete deletes an entry.
func (h *CatalogHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(h.ref(c.Params("id"))); err != nil {
		return respondServiceError(c, "Could not delete item", err)
	}
	return c.JSON(fiber.Map{"message": "Item removed"})
}

// HandleToggleLike flips the authenticated user's like on an entry.
func (h *CatalogHandler) HandleToggleLike(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	item, err := h.service.ToggleLike(h.ref(c.Params("id")), user.ID)
	if err != nil {
		return respondServiceError(c, "Could not toggle like", err)
	}
	return c.JSON(item)
}

// ReviewRequest is the request body for adding a review.
type ReviewRequest struct {
	Rating  float64 `json:"rating" validate:"required"`
	Comment string  `json:"comment" validate:"required"`
}

// HandleAddReview appends the authenticated user's review to an entry.
func (h *CatalogHandler) HandleAddReview(c *fiber.Ctx) error {
	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	user := middleware.CurrentUser(c)
	item, err := h.service.AddReview(h.ref(c.Params("id")), user.ID, user.Name, req.Rating, req.Comment)
	if err != nil {
		return respondServiceError(c, "Could not add review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
