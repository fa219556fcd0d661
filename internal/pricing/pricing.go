// Package pricing derives the payable total for an order from the cart and
// the customer's delivery, loyalty-coin and subscription choices. It is pure
// computation over integer cents; persistence and payment live elsewhere.
package pricing

// Fee and rate constants, in cents and basis points.
const (
	StandardDeliveryFeeCents = 199
	ExpressDeliveryFeeCents  = 499
	DormDropFeeCents         = 99

	taxRateBps         = 500  // 5% of subtotal
	proDiscountRateBps = 1000 // 10% of subtotal

	// FleetoCoins: redeemed in blocks of 20, 10 coins = $1, earned at
	// 1 coin per $20 of subtotal.
	CoinRedeemStep     = 20
	CentsPerCoin       = 10
	EarnThresholdCents = 2000
)

// Line is one cart entry as seen by the pricing engine.
type Line struct {
	ItemID         string
	Name           string
	UnitPriceCents int64
	Quantity       int
	Image          string
}

// QuoteInput collects everything pricing needs to know about an order.
type QuoteInput struct {
	Lines          []Line
	DeliveryMethod string // "standard" or "express"
	DormDrop       bool
	HostelName     string
	RoomNumber     string
	Address        string
	CoinsToUse     int
	AvailableCoins int
	IsPro          bool
	PaymentMethod  string // "card" or "cash"
}

// Quote is the full pricing breakdown for a valid QuoteInput.
type Quote struct {
	SubtotalCents        int64
	BaseDeliveryFeeCents int64
	DormDropFeeCents     int64
	DeliveryFeeCents     int64
	TaxCents             int64
	CoinsUsed            int
	CoinDiscountCents    int64
	ProDiscountCents     int64
	TotalCents           int64
	CoinsEarned          int
	MaxUsableCoins       int
}

// Compute prices a validated input. Callers must run Validate first; Compute
// assumes the coin and delivery constraints already hold.
func Compute(in QuoteInput) Quote {
	var subtotal int64
	for _, line := range in.Lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}

	baseFee := int64(StandardDeliveryFeeCents)
	if in.DeliveryMethod == DeliveryExpress {
		baseFee = ExpressDeliveryFeeCents
	}

	var dormFee int64
	if in.DormDrop {
		dormFee = DormDropFeeCents
	}
	deliveryFee := baseFee + dormFee

	tax := percentOf(subtotal, taxRateBps)

	coinDiscount := int64(in.CoinsToUse) * CentsPerCoin
	if coinDiscount > subtotal {
		coinDiscount = subtotal
	}

	var proDiscount int64
	if in.IsPro {
		proDiscount = percentOf(subtotal, proDiscountRateBps)
	}

	total := subtotal + deliveryFee + tax - coinDiscount - proDiscount
	if total < 0 {
		total = 0
	}

	// Coins cannot be spent on tax: cap at 20 coins per dollar of subtotal
	// plus delivery fee.
	maxUsable := int((subtotal + deliveryFee) / 5)
	if maxUsable > in.AvailableCoins {
		maxUsable = in.AvailableCoins
	}

	return Quote{
		SubtotalCents:        subtotal,
		BaseDeliveryFeeCents: baseFee,
		DormDropFeeCents:     dormFee,
		DeliveryFeeCents:     deliveryFee,
		TaxCents:             tax,
		CoinsUsed:            in.CoinsToUse,
		CoinDiscountCents:    coinDiscount,
		ProDiscountCents:     proDiscount,
		TotalCents:           total,
		CoinsEarned:          int(subtotal / EarnThresholdCents),
		MaxUsableCoins:       maxUsable,
	}
}

// percentOf applies a basis-point rate with half-up rounding.
func percentOf(amount int64, bps int64) int64 {
	return (amount*bps + 5000) / 10000
}
