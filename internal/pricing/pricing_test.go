package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(priceCents int64, qty int) []Line {
	return []Line{{ItemID: "itm-1", Name: "Veg Biryani", UnitPriceCents: priceCents, Quantity: qty}}
}

func TestComputeStandardDelivery(t *testing.T) {
	// $20.00 subtotal, standard delivery, no extras.
	q := Compute(QuoteInput{
		Lines:          lines(2000, 1),
		DeliveryMethod: DeliveryStandard,
		Address:        "Block C, Faculty Housing",
		PaymentMethod:  PaymentCash,
	})

	assert.Equal(t, int64(2000), q.SubtotalCents)
	assert.Equal(t, int64(199), q.DeliveryFeeCents)
	assert.Equal(t, int64(100), q.TaxCents)
	assert.Equal(t, int64(2299), q.TotalCents)
	assert.Equal(t, 1, q.CoinsEarned)
}

func TestComputeExpressDormProAndCoins(t *testing.T) {
	// $50.00 subtotal, express + dorm drop, 40 coins, Pro.
	q := Compute(QuoteInput{
		Lines:          lines(2500, 2),
		DeliveryMethod: DeliveryExpress,
		DormDrop:       true,
		HostelName:     "M3",
		RoomNumber:     "214",
		CoinsToUse:     40,
		AvailableCoins: 120,
		IsPro:          true,
		PaymentMethod:  PaymentCard,
	})

	assert.Equal(t, int64(5000), q.SubtotalCents)
	assert.Equal(t, int64(499), q.BaseDeliveryFeeCents)
	assert.Equal(t, int64(99), q.DormDropFeeCents)
	assert.Equal(t, int64(598), q.DeliveryFeeCents)
	assert.Equal(t, int64(250), q.TaxCents)
	assert.Equal(t, int64(400), q.CoinDiscountCents)
	assert.Equal(t, int64(500), q.ProDiscountCents)
	assert.Equal(t, int64(4948), q.TotalCents)
	assert.Equal(t, 2, q.CoinsEarned)
}

func TestComputeTotalNeverNegative(t *testing.T) {
	q := Compute(QuoteInput{
		Lines:          lines(100, 1), // $1 order
		DeliveryMethod: DeliveryStandard,
		CoinsToUse:     200, // would be a $20 discount, clamped to subtotal
		AvailableCoins: 200,
		IsPro:          true,
		PaymentMethod:  PaymentCash,
	})

	assert.Equal(t, int64(100), q.CoinDiscountCents, "coin discount clamps to subtotal")
	assert.GreaterOrEqual(t, q.TotalCents, int64(0))
}

func TestComputeCoinDiscountClamp(t *testing.T) {
	cases := []struct {
		coins        int
		wantDiscount int64
	}{
		{0, 0},
		{20, 200},
		{40, 400},
		{100, 1000},
		{400, 3000}, // 400 coins = $40, clamped to $30 subtotal
	}
	for _, tc := range cases {
		q := Compute(QuoteInput{
			Lines:          lines(3000, 1),
			DeliveryMethod: DeliveryStandard,
			CoinsToUse:     tc.coins,
			AvailableCoins: 500,
			PaymentMethod:  PaymentCash,
		})
		if q.CoinDiscountCents != tc.wantDiscount {
			t.Fatalf("coins=%d: expected discount %d, got %d", tc.coins, tc.wantDiscount, q.CoinDiscountCents)
		}
	}
}

func TestComputeIdempotent(t *testing.T) {
	in := QuoteInput{
		Lines:          lines(1250, 3),
		DeliveryMethod: DeliveryExpress,
		Address:        "North Gate",
		CoinsToUse:     20,
		AvailableCoins: 60,
		PaymentMethod:  PaymentCard,
	}

	first := Compute(in)
	second := Compute(in)
	require.Equal(t, first, second)
}

func TestComputeMaxUsableCoins(t *testing.T) {
	q := Compute(QuoteInput{
		Lines:          lines(1000, 1), // $10 + $1.99 fee
		DeliveryMethod: DeliveryStandard,
		AvailableCoins: 1000,
		PaymentMethod:  PaymentCash,
	})
	// (1000+199)/5 = 239 coins, below the available balance.
	assert.Equal(t, 239, q.MaxUsableCoins)

	q = Compute(QuoteInput{
		Lines:          lines(1000, 1),
		DeliveryMethod: DeliveryStandard,
		AvailableCoins: 60,
		PaymentMethod:  PaymentCash,
	})
	assert.Equal(t, 60, q.MaxUsableCoins, "cap falls back to the balance when smaller")
}
