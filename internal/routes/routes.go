package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/config"
	"github.com/example/fleeto/internal/handlers"
	"github.com/example/fleeto/internal/middleware"
	"github.com/example/fleeto/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	mailer := services.NewMailerService(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom)
	payment := services.NewPaymentService(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey, cfg.CheckoutSuccess, cfg.CheckoutCancel)
	assistant := services.NewAssistantService(cfg.AssistantAPIURL, cfg.AssistantAPIKey, cfg.AssistantModel)

	authHandler := handlers.NewAuthHandler(db, cfg, mailer)
	shopHandler := handlers.NewShopHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db, payment)
	coinsHandler := handlers.NewCoinsHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	assistantHandler := handlers.NewAssistantHandler(assistant)

	api := app.Group("/api")

	// Auth & signup verification
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/resend-otp", authHandler.ResendOTP)
	auth.Post("/login", authHandler.Login)

	// Shop & menu catalog
	shops := api.Group("/shops")
	shops.Get("/", shopHandler.ListShops)
	shops.Post("/", shopHandler.CreateShop)
	shops.Get("/:id", shopHandler.GetShop)
	shops.Put("/:id", shopHandler.UpdateShop)
	shops.Delete("/:id", shopHandler.DeleteShop)
	shops.Get("/:id/menu", shopHandler.ListMenu)
	shops.Post("/:id/menu", shopHandler.CreateMenuItem)
	shops.Put("/:id/menu/:itemId", shopHandler.UpdateMenuItem)
	shops.Delete("/:id/menu/:itemId", shopHandler.DeleteMenuItem)

	// Coin deduction is keyed by email per the client contract.
	api.Post("/coins/deduct", coinsHandler.DeductCoins)

	// Assistant persona
	api.Post("/assistant/chat", assistantHandler.Chat)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Post("/cart/clear", cartHandler.ClearCart)

	protected.Post("/orders/quote", orderHandler.QuoteOrder)
	protected.Post("/orders", orderHandler.PlaceOrder)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/coins/balance", coinsHandler.GetBalance)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Post("/pro/subscribe", profileHandler.SubscribePro)
	protected.Get("/pro/status", profileHandler.ProStatus)
}
