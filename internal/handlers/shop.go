package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/models"
	"github.com/example/fleeto/internal/utils"
)

// ShopHandler manages the shop and menu catalog.
type ShopHandler struct {
	db *gorm.DB
}

// NewShopHandler constructs ShopHandler.
func NewShopHandler(db *gorm.DB) *ShopHandler {
	return &ShopHandler{db: db}
}

// ListShops returns paginated shops, optionally filtered by category.
func (h *ShopHandler) ListShops(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Shop{})

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("open") == "true" {
		query = query.Where("is_open")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var shops []models.Shop
	if err := query.Limit(pg.Limit).Offset(pg.Offset).Order("rating desc").
		Find(&shops).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    shops,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetShop returns a single shop with its menu.
func (h *ShopHandler) GetShop(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var shop models.Shop
	if err := h.db.Preload("MenuItems").First(&shop, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "shop not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": shop})
}

// CreateShop persists a new shop.
func (h *ShopHandler) CreateShop(c *fiber.Ctx) error {
	var payload models.Shop
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateShop updates an existing shop.
func (h *ShopHandler) UpdateShop(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "shop not found")
		}
		return err
	}

	var payload models.Shop
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = shop.ID
	payload.CreatedAt = shop.CreatedAt
	if err := h.db.Save(&payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteShop removes a shop and its menu items.
func (h *ShopHandler) DeleteShop(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Where("shop_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
		return err
	}
	if err := h.db.Delete(&models.Shop{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "shop deleted"})
}

// ListMenu returns a shop's menu items.
func (h *ShopHandler) ListMenu(c *fiber.Ctx) error {
	shopID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	query := h.db.Where("shop_id = ?", shopID)
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Order("name asc").Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// CreateMenuItem adds a menu item to a shop.
func (h *ShopHandler) CreateMenuItem(c *fiber.Ctx) error {
	shopID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var shop models.Shop
	if err := h.db.First(&shop, "id = ?", shopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "shop not found")
		}
		return err
	}

	var payload models.MenuItem
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.PriceCents < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price cannot be negative")
	}

	payload.ShopID = shop.ID
	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateMenuItem updates a shop's menu item.
func (h *ShopHandler) UpdateMenuItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var item models.MenuItem
	if err := h.db.First(&item, "id = ?", itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}
		return err
	}

	var payload models.MenuItem
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = item.ID
	payload.ShopID = item.ShopID
	payload.CreatedAt = item.CreatedAt
	if err := h.db.Save(&payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteMenuItem removes a menu item.
func (h *ShopHandler) DeleteMenuItem(c *fiber.Ctx) error {
	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.MenuItem{}, "id = ?", itemID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "menu item deleted"})
}
