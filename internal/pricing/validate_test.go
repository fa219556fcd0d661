package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validInput() QuoteInput {
	return QuoteInput{
		Lines:          lines(1500, 2),
		DeliveryMethod: DeliveryStandard,
		Address:        "Faculty Housing 12",
		CoinsToUse:     0,
		AvailableCoins: 100,
		PaymentMethod:  PaymentCash,
	}
}

func TestValidateAcceptsWellFormedInput(t *testing.T) {
	if errs := Validate(validInput()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateEmptyCart(t *testing.T) {
	in := validInput()
	in.Lines = nil

	errs := Validate(in)
	assert.Contains(t, errs.Map(), "items")
}

func TestValidateCoinRules(t *testing.T) {
	cases := []struct {
		name      string
		coins     int
		available int
		wantErr   bool
	}{
		{"zero coins", 0, 0, false},
		{"multiple of twenty", 40, 100, false},
		{"not a multiple of twenty", 25, 100, true},
		{"exceeds balance", 60, 40, true},
		{"negative", -20, 100, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.CoinsToUse = tc.coins
			in.AvailableCoins = tc.available

			errs := Validate(in)
			_, found := errs.Map()["coins_to_use"]
			if found != tc.wantErr {
				t.Fatalf("coins=%d available=%d: expected error=%v, got %v", tc.coins, tc.available, tc.wantErr, errs)
			}
		})
	}
}

func TestValidateCoinDiscountExceedsSubtotal(t *testing.T) {
	in := validInput()
	in.Lines = lines(100, 1) // $1 subtotal
	in.CoinsToUse = 40       // $4 discount
	in.AvailableCoins = 100

	errs := Validate(in)
	assert.Contains(t, errs.Map(), "coins_to_use")
}

func TestValidateDormDrop(t *testing.T) {
	cases := []struct {
		hostel string
		room   string
		ok     bool
	}{
		{"M1", "101", true},
		{"M7", "999", true},
		{"F6", "004", true},
		{"M8", "101", false}, // out of the male building range
		{"F7", "101", false}, // out of the female building range
		{"X1", "101", false},
		{"M10", "101", false},
		{"M1", "12", false},
		{"M1", "1234", false},
		{"M1", "12a", false},
		{"", "", false},
	}

	for _, tc := range cases {
		in := validInput()
		in.DormDrop = true
		in.Address = ""
		in.HostelName = tc.hostel
		in.RoomNumber = tc.room

		errs := Validate(in)
		if tc.ok && len(errs) != 0 {
			t.Fatalf("hostel=%q room=%q: expected valid, got %v", tc.hostel, tc.room, errs)
		}
		if !tc.ok && len(errs) == 0 {
			t.Fatalf("hostel=%q room=%q: expected errors", tc.hostel, tc.room)
		}
	}
}

func TestValidateRequiresAddressWithoutDormDrop(t *testing.T) {
	in := validInput()
	in.Address = ""

	errs := Validate(in)
	assert.Contains(t, errs.Map(), "address")
}

func TestValidateCollectsAllErrors(t *testing.T) {
	in := QuoteInput{
		DormDrop:       true,
		HostelName:     "Z9",
		RoomNumber:     "9",
		CoinsToUse:     25,
		AvailableCoins: 10,
		DeliveryMethod: "drone",
		PaymentMethod:  "barter",
	}

	errs := Validate(in)
	fields := errs.Map()
	for _, field := range []string{"items", "hostel_name", "room_number", "coins_to_use", "delivery_method", "payment_method"} {
		assert.Contains(t, fields, field)
	}
}
