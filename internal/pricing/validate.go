package pricing

import (
	"fmt"
	"regexp"
)

// Delivery and payment method values accepted by Validate.
const (
	DeliveryStandard = "standard"
	DeliveryExpress  = "express"

	PaymentCard = "card"
	PaymentCash = "cash"
)

// hostelPattern matches a building letter plus a single digit; the numeric
// range per building (M1-M7, F1-F6) is checked separately.
var (
	hostelPattern = regexp.MustCompile(`^[MF][1-9]$`)
	roomPattern   = regexp.MustCompile(`^[0-9]{3}$`)
)

// FieldError scopes a validation message to a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors collects every failed rule so the client can render them all at
// once.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return "valid"
	}
	return fmt.Sprintf("%s: %s", e[0].Field, e[0].Message)
}

// Map renders the errors as field -> message for JSON responses.
func (e FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(e))
	for _, fe := range e {
		if _, taken := out[fe.Field]; !taken {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Validate checks a QuoteInput against the checkout rules, in order: cart,
// delivery destination, coins, method enums. All violations are collected.
func Validate(in QuoteInput) FieldErrors {
	var errs FieldErrors

	if len(in.Lines) == 0 {
		errs = append(errs, FieldError{Field: "items", Message: "cart is empty"})
	}
	for _, line := range in.Lines {
		if line.Quantity < 1 {
			errs = append(errs, FieldError{Field: "items", Message: fmt.Sprintf("invalid quantity for %q", line.Name)})
			break
		}
		if line.UnitPriceCents < 0 {
			errs = append(errs, FieldError{Field: "items", Message: fmt.Sprintf("invalid price for %q", line.Name)})
			break
		}
	}

	if in.DormDrop {
		if !validHostel(in.HostelName) {
			errs = append(errs, FieldError{Field: "hostel_name", Message: "hostel must be M1-M7 or F1-F6"})
		}
		if !roomPattern.MatchString(in.RoomNumber) {
			errs = append(errs, FieldError{Field: "room_number", Message: "room number must be exactly 3 digits"})
		}
	} else if in.Address == "" {
		errs = append(errs, FieldError{Field: "address", Message: "delivery address is required"})
	}

	var subtotal int64
	for _, line := range in.Lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}

	switch {
	case in.CoinsToUse < 0:
		errs = append(errs, FieldError{Field: "coins_to_use", Message: "coins cannot be negative"})
	case in.CoinsToUse%CoinRedeemStep != 0:
		errs = append(errs, FieldError{Field: "coins_to_use", Message: fmt.Sprintf("coins must be redeemed in multiples of %d", CoinRedeemStep)})
	case in.CoinsToUse > in.AvailableCoins:
		errs = append(errs, FieldError{Field: "coins_to_use", Message: "not enough coins available"})
	case int64(in.CoinsToUse)*CentsPerCoin > subtotal && in.CoinsToUse > 0:
		errs = append(errs, FieldError{Field: "coins_to_use", Message: "coin discount cannot exceed subtotal"})
	}

	if in.DeliveryMethod != DeliveryStandard && in.DeliveryMethod != DeliveryExpress {
		errs = append(errs, FieldError{Field: "delivery_method", Message: "delivery method must be standard or express"})
	}
	if in.PaymentMethod != PaymentCard && in.PaymentMethod != PaymentCash {
		errs = append(errs, FieldError{Field: "payment_method", Message: "payment method must be card or cash"})
	}

	return errs
}

func validHostel(name string) bool {
	if !hostelPattern.MatchString(name) {
		return false
	}
	digit := int(name[1] - '0')
	if name[0] == 'M' {
		return digit <= 7
	}
	return digit <= 6
}
