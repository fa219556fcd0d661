package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/fleeto/internal/config"
	"github.com/example/fleeto/internal/models"
	"github.com/example/fleeto/internal/services"
	"github.com/example/fleeto/internal/utils"
)

// AuthHandler bundles dependencies for signup, verification and login.
type AuthHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	mailer *services.MailerService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer *services.MailerService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: mailer}
}

type signupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}

// Signup stores a pending registration and emails a one-time code. The
// account itself is only created once the code is verified.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	fields := map[string]string{}
	if req.FirstName == "" {
		fields["first_name"] = "first name is required"
	}
	if req.Email == "" {
		fields["email"] = "email is required"
	}
	if len(req.Password) < 6 {
		fields["password"] = "password must be at least 6 characters"
	}
	if len(fields) > 0 {
		return validationError(c, fields)
	}

	var existing models.Account
	if err := h.db.Where("email = ? AND is_verified", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "an account with this email already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
	}

	codeHash, err := utils.HashOTP(code)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
	}

	registration := models.PendingRegistration{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		PasswordHash: passwordHash,
		ExpiresAt:    time.Now().Add(h.cfg.OTPTTL),
	}

	// The registration, its challenge and the email send succeed or fail as
	// one unit: a failed send rolls everything back so no orphan rows wait
	// for a code that never arrived.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", req.Email).Delete(&models.OTPChallenge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("email = ?", req.Email).Delete(&models.PendingRegistration{}).Error; err != nil {
			return err
		}

		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		challenge := models.OTPChallenge{
			RegistrationID: registration.ID,
			Email:          req.Email,
			CodeHash:       codeHash,
			ExpiresAt:      time.Now().Add(h.cfg.OTPTTL),
		}
		if err := tx.Create(&challenge).Error; err != nil {
			return err
		}

		return h.mailer.SendOTP(req.Email, req.FirstName, code)
	})
	if err != nil {
		log.Printf("[Auth] signup for %s failed: %v", req.Email, err)
		return fiber.NewError(fiber.StatusBadGateway, "could not send verification email")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"temp_user_id": registration.ID,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP validates the submitted code and materializes the account.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" || req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and otp are required")
	}

	var challenge models.OTPChallenge
	err := h.db.Where("email = ?", req.Email).
		Order("created_at desc").
		First(&challenge).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "verification code not found")
		}
		return err
	}

	if challenge.Expired(time.Now()) {
		if err := h.db.Delete(&challenge).Error; err != nil {
			return err
		}
		return fiber.NewError(fiber.StatusGone, "verification code expired, request a new one")
	}

	if !utils.CheckOTP(challenge.CodeHash, req.OTP) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid verification code")
	}

	var registration models.PendingRegistration
	if err := h.db.First(&registration, "id = ?", challenge.RegistrationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "registration not found")
		}
		return err
	}

	account := models.Account{
		FirstName:    registration.FirstName,
		LastName:     registration.LastName,
		Email:        registration.Email,
		Phone:        registration.Phone,
		Address:      registration.Address,
		PasswordHash: registration.PasswordHash,
		IsVerified:   true,
	}

	// Account creation and cleanup of the temporary rows commit together so
	// a crash cannot leave a verified account alongside a live challenge.
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		if err := tx.Where("email = ?", registration.Email).First(&existing).Error; err == nil {
			return gorm.ErrDuplicatedKey
		} else if err != gorm.ErrRecordNotFound {
			return err
		}

		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		if err := tx.Delete(&registration).Error; err != nil {
			return err
		}
		return tx.Where("email = ?", registration.Email).Delete(&models.OTPChallenge{}).Error
	})
	if err != nil {
		if err == gorm.ErrDuplicatedKey {
			return fiber.NewError(fiber.StatusConflict, "an account with this email already exists")
		}
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "account verified",
		"data": fiber.Map{
			"id":    account.ID,
			"email": account.Email,
		},
	})
}

type resendOTPRequest struct {
	UserID string `json:"user_id"`
}

// ResendOTP issues a fresh code for an existing pending registration. The
// previous challenge is removed first so only one code is ever live.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req resendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	registrationID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var registration models.PendingRegistration
	if err := h.db.First(&registration, "id = ?", registrationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "registration not found")
		}
		return err
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
	}

	codeHash, err := utils.HashOTP(code)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", registration.Email).Delete(&models.OTPChallenge{}).Error; err != nil {
			return err
		}

		challenge := models.OTPChallenge{
			RegistrationID: registration.ID,
			Email:          registration.Email,
			CodeHash:       codeHash,
			ExpiresAt:      time.Now().Add(h.cfg.OTPTTL),
		}
		if err := tx.Create(&challenge).Error; err != nil {
			return err
		}

		if err := tx.Model(&registration).Update("expires_at", time.Now().Add(h.cfg.OTPTTL)).Error; err != nil {
			return err
		}

		return h.mailer.SendOTP(registration.Email, registration.FirstName, code)
	})
	if err != nil {
		log.Printf("[Auth] resend for %s failed: %v", registration.Email, err)
		return fiber.NewError(fiber.StatusBadGateway, "could not send verification email")
	}

	return c.JSON(fiber.Map{"success": true})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified account.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var account models.Account
	if err := h.db.Where("email = ?", req.Email).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(account.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, account.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":         account.ID,
			"first_name": account.FirstName,
			"last_name":  account.LastName,
			"email":      account.Email,
			"coins":      account.Coins,
			"is_pro":     account.ProActive(time.Now()),
		},
	})
}
