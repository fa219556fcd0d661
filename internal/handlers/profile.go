package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/middleware"
	"github.com/example/fleeto/internal/models"
)

// ProfileHandler manages account profile and Fleeto Pro endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated account profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var account models.Account
	if err := h.db.First(&account, "id = ?", accountID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":             account.ID,
			"first_name":     account.FirstName,
			"last_name":      account.LastName,
			"email":          account.Email,
			"phone":          account.Phone,
			"address":        account.Address,
			"is_verified":    account.IsVerified,
			"coins":          account.Coins,
			"is_pro":         account.ProActive(time.Now()),
			"pro_expires_at": account.ProExpiresAt,
			"created_at":     account.CreatedAt,
		},
	})
}

type updateProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

// UpdateProfile updates mutable profile fields.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.Account{}).Where("id = ?", accountID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "profile updated"})
}

type subscribeProRequest struct {
	Plan string `json:"plan"` // monthly|yearly
}

// SubscribePro activates or extends the Fleeto Pro subscription.
func (h *ProfileHandler) SubscribePro(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req subscribeProRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var duration time.Duration
	switch req.Plan {
	case "monthly":
		duration = 30 * 24 * time.Hour
	case "yearly":
		duration = 365 * 24 * time.Hour
	default:
		return fiber.NewError(fiber.StatusBadRequest, "plan must be monthly or yearly")
	}

	var account models.Account
	if err := h.db.First(&account, "id = ?", accountID).Error; err != nil {
		return err
	}

	// Extending an active subscription stacks on top of the remaining time.
	start := time.Now()
	if account.ProActive(start) {
		start = *account.ProExpiresAt
	}
	expiry := start.Add(duration)

	if err := h.db.Model(&models.Account{}).Where("id = ?", accountID).Updates(map[string]interface{}{
		"is_pro":         true,
		"pro_expires_at": expiry,
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"is_pro":         true,
			"plan":           req.Plan,
			"pro_expires_at": expiry,
		},
	})
}

// ProStatus reports whether Pro is active for the account.
func (h *ProfileHandler) ProStatus(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var account models.Account
	if err := h.db.First(&account, "id = ?", accountID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"is_pro":         account.ProActive(time.Now()),
			"pro_expires_at": account.ProExpiresAt,
		},
	})
}
