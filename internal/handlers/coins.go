package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/middleware"
	"github.com/example/fleeto/internal/models"
)

// CoinsHandler manages the FleetoCoins ledger endpoints.
type CoinsHandler struct {
	db *gorm.DB
}

// NewCoinsHandler constructs CoinsHandler.
func NewCoinsHandler(db *gorm.DB) *CoinsHandler {
	return &CoinsHandler{db: db}
}

// GetBalance returns the authenticated account's coin balance.
func (h *CoinsHandler) GetBalance(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var account models.Account
	if err := h.db.First(&account, "id = ?", accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "account not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "coins": account.Coins})
}

type deductCoinsRequest struct {
	Email         string `json:"email"`
	CoinsToDeduct int    `json:"coins_to_deduct"`
}

// DeductCoins atomically removes coins from an account. The conditional
// update keeps concurrent redemptions from driving the balance negative.
func (h *CoinsHandler) DeductCoins(c *fiber.Ctx) error {
	var req deductCoinsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}
	if req.CoinsToDeduct <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "coins_to_deduct must be positive")
	}

	res := h.db.Model(&models.Account{}).
		Where("email = ? AND coins >= ?", req.Email, req.CoinsToDeduct).
		UpdateColumn("coins", gorm.Expr("coins - ?", req.CoinsToDeduct))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var account models.Account
		if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fiber.NewError(fiber.StatusNotFound, "account not found")
			}
			return err
		}
		return fiber.NewError(fiber.StatusConflict, "insufficient coin balance")
	}

	var account models.Account
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":           true,
		"new_coins_balance": account.Coins,
	})
}
