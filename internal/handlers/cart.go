package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/middleware"
	"github.com/example/fleeto/internal/models"
)

// CartHandler manages the server-side cart.
type CartHandler struct {
	db *gorm.DB
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

// GetCart returns the account's cart, creating an empty one on first access.
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.loadCart(accountID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": cart})
}

type addCartItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// AddItem adds a menu item to the cart, merging quantity into an existing line.
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req addCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity < 1 {
		req.Quantity = 1
	}

	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid menu item id")
	}

	var menuItem models.MenuItem
	if err := h.db.First(&menuItem, "id = ?", menuItemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "menu item not found")
		}
		return err
	}
	if !menuItem.IsAvailable {
		return fiber.NewError(fiber.StatusConflict, "menu item is not available")
	}

	cart, err := h.loadCart(accountID)
	if err != nil {
		return err
	}

	var line models.CartItem
	err = h.db.Where("cart_id = ? AND menu_item_id = ?", cart.ID, menuItemID).First(&line).Error
	switch {
	case err == nil:
		line.Quantity += req.Quantity
		if err := h.db.Save(&line).Error; err != nil {
			return err
		}
	case err == gorm.ErrRecordNotFound:
		line = models.CartItem{
			CartID:         cart.ID,
			MenuItemID:     menuItem.ID,
			Name:           menuItem.Name,
			UnitPriceCents: menuItem.PriceCents,
			Quantity:       req.Quantity,
			Image:          menuItem.Image,
		}
		if err := h.db.Create(&line).Error; err != nil {
			return err
		}
	default:
		return err
	}

	cart, err = h.loadCart(accountID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cart})
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cart, err := h.loadCart(accountID)
	if err != nil {
		return err
	}

	var line models.CartItem
	if err := h.db.First(&line, "id = ? AND cart_id = ?", itemID, cart.ID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "cart item not found")
		}
		return err
	}

	if req.Quantity <= 0 {
		if err := h.db.Delete(&line).Error; err != nil {
			return err
		}
	} else {
		line.Quantity = req.Quantity
		if err := h.db.Save(&line).Error; err != nil {
			return err
		}
	}

	cart, err = h.loadCart(accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cart})
}

// RemoveItem deletes a line from the cart.
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	cart, err := h.loadCart(accountID)
	if err != nil {
		return err
	}

	if err := h.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	cart, err = h.loadCart(accountID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cart})
}

// ClearCart removes every line.
func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.loadCart(accountID)
	if err != nil {
		return err
	}

	if err := h.db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "cart cleared"})
}

func (h *CartHandler) loadCart(accountID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := h.db.Preload("Items").Where("account_id = ?", accountID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{AccountID: accountID}
		if err := h.db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}
