package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/middleware"
	"github.com/example/fleeto/internal/models"
	"github.com/example/fleeto/internal/pricing"
	"github.com/example/fleeto/internal/services"
	"github.com/example/fleeto/internal/utils"
)

// OrderHandler manages order pricing and placement.
type OrderHandler struct {
	db      *gorm.DB
	payment *services.PaymentService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, payment *services.PaymentService) *OrderHandler {
	return &OrderHandler{db: db, payment: payment}
}

type placeOrderRequest struct {
	DeliveryMethod string `json:"delivery_method"`
	DormDrop       bool   `json:"dorm_drop"`
	HostelName     string `json:"hostel_name"`
	RoomNumber     string `json:"room_number"`
	Address        string `json:"address"`
	CoinsToUse     int    `json:"coins_to_use"`
	PaymentMethod  string `json:"payment_method"`
}

// QuoteOrder prices the current cart without placing anything, so the
// checkout page can show the breakdown live.
func (h *OrderHandler) QuoteOrder(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input, _, _, err := h.buildQuoteInput(accountID, req)
	if err != nil {
		return err
	}

	if errs := pricing.Validate(input); len(errs) > 0 {
		return validationError(c, errs.Map())
	}

	return c.JSON(fiber.Map{"success": true, "data": quotePayload(pricing.Compute(input))})
}

// PlaceOrder runs the full placement pipeline: validate, price, deduct coins,
// persist the order, clear the cart, credit earned coins, and hand card
// payments off to the gateway.
func (h *OrderHandler) PlaceOrder(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req placeOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input, account, cart, err := h.buildQuoteInput(accountID, req)
	if err != nil {
		return err
	}

	if errs := pricing.Validate(input); len(errs) > 0 {
		return validationError(c, errs.Map())
	}

	quote := pricing.Compute(input)

	orderNumber, err := utils.GenerateOrderNumber()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate order number")
	}

	order := models.Order{
		AccountID:      accountID,
		OrderNumber:    orderNumber,
		Status:         "processing",
		PlacedAt:       time.Now(),
		DeliveryMethod: req.DeliveryMethod,
		DormDrop:       req.DormDrop,
		HostelName:     req.HostelName,
		RoomNumber:     req.RoomNumber,
		Address:        req.Address,
		PaymentMethod:  req.PaymentMethod,

		SubtotalCents:        quote.SubtotalCents,
		BaseDeliveryFeeCents: quote.BaseDeliveryFeeCents,
		DormDropFeeCents:     quote.DormDropFeeCents,
		TaxCents:             quote.TaxCents,
		CoinsUsed:            quote.CoinsUsed,
		CoinDiscountCents:    quote.CoinDiscountCents,
		CoinsEarned:          quote.CoinsEarned,
		IsPro:                input.IsPro,
		ProDiscountCents:     quote.ProDiscountCents,
		TotalCents:           quote.TotalCents,
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:     item.MenuItemID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			Image:          item.Image,
			LineTotalCents: item.UnitPriceCents * int64(item.Quantity),
		})
	}

	// Coin redemption, order persistence, cart clearing and the earn credit
	// commit atomically; a failed conditional decrement aborts the whole
	// placement with no partial discount.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if quote.CoinsUsed > 0 {
			res := tx.Model(&models.Account{}).
				Where("id = ? AND coins >= ?", accountID, quote.CoinsUsed).
				UpdateColumn("coins", gorm.Expr("coins - ?", quote.CoinsUsed))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return errInsufficientCoins
			}
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		if quote.CoinsEarned > 0 {
			if err := tx.Model(&models.Account{}).
				Where("id = ?", accountID).
				UpdateColumn("coins", gorm.Expr("coins + ?", quote.CoinsEarned)).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errInsufficientCoins) {
			return fiber.NewError(fiber.StatusConflict, "not enough coins available")
		}
		return err
	}

	response := fiber.Map{
		"success": true,
		"data": fiber.Map{
			"id":           order.ID,
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"placed_at":    order.PlacedAt,
			"pricing":      quotePayload(quote),
		},
	}

	if req.PaymentMethod == pricing.PaymentCard {
		url, err := h.payment.CreateCheckoutSession(checkoutItems(order), account.Email, order.OrderNumber)
		if err != nil {
			// Coins stay deducted; the client retries payment against the
			// already-created order.
			log.Printf("[Order] checkout session for %s failed: %v", order.OrderNumber, err)
			return fiber.NewError(fiber.StatusBadGateway, "payment gateway unavailable, please retry")
		}
		response["data"].(fiber.Map)["url"] = url
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

var errInsufficientCoins = errors.New("insufficient coins")

func (h *OrderHandler) buildQuoteInput(accountID uuid.UUID, req placeOrderRequest) (pricing.QuoteInput, *models.Account, *models.Cart, error) {
	var account models.Account
	if err := h.db.First(&account, "id = ?", accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return pricing.QuoteInput{}, nil, nil, fiber.NewError(fiber.StatusNotFound, "account not found")
		}
		return pricing.QuoteInput{}, nil, nil, err
	}

	var cart models.Cart
	if err := h.db.Preload("Items").Where("account_id = ?", accountID).First(&cart).Error; err != nil && err != gorm.ErrRecordNotFound {
		return pricing.QuoteInput{}, nil, nil, err
	}

	input := pricing.QuoteInput{
		DeliveryMethod: req.DeliveryMethod,
		DormDrop:       req.DormDrop,
		HostelName:     req.HostelName,
		RoomNumber:     req.RoomNumber,
		Address:        req.Address,
		CoinsToUse:     req.CoinsToUse,
		AvailableCoins: account.Coins,
		IsPro:          account.ProActive(time.Now()),
		PaymentMethod:  req.PaymentMethod,
	}
	for _, item := range cart.Items {
		input.Lines = append(input.Lines, pricing.Line{
			ItemID:         item.MenuItemID.String(),
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			Image:          item.Image,
		})
	}

	return input, &account, &cart, nil
}

func checkoutItems(order models.Order) []services.CheckoutLineItem {
	items := make([]services.CheckoutLineItem, 0, len(order.Items)+1)
	for _, item := range order.Items {
		items = append(items, services.CheckoutLineItem{
			Name:        item.Name,
			AmountCents: item.UnitPriceCents,
			Quantity:    item.Quantity,
		})
	}

	// Fees, tax and discounts collapse into one adjustment row so the
	// gateway charge matches the computed total exactly.
	adjustment := order.TotalCents - order.SubtotalCents
	if adjustment != 0 {
		items = append(items, services.CheckoutLineItem{
			Name:        "Delivery, tax & discounts",
			AmountCents: adjustment,
			Quantity:    1,
		})
	}

	return items
}

func quotePayload(q pricing.Quote) fiber.Map {
	return fiber.Map{
		"subtotal_cents":          q.SubtotalCents,
		"base_delivery_fee_cents": q.BaseDeliveryFeeCents,
		"dorm_drop_fee_cents":     q.DormDropFeeCents,
		"delivery_fee_cents":      q.DeliveryFeeCents,
		"tax_cents":               q.TaxCents,
		"coins_used":              q.CoinsUsed,
		"coin_discount_cents":     q.CoinDiscountCents,
		"pro_discount_cents":      q.ProDiscountCents,
		"total_cents":             q.TotalCents,
		"coins_earned":            q.CoinsEarned,
		"max_usable_coins":        q.MaxUsableCoins,
	}
}

// ListOrders returns orders for the authenticated account.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Where("account_id = ?", accountID).Model(&models.Order{})

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items").
		Order("placed_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order for the authenticated account.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	accountID, ok := middleware.GetCurrentAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").
		First(&order, "id = ? AND account_id = ?", id, accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
