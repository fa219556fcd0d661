package utils

import (
	"regexp"
	"testing"
)

var orderNumberPattern = regexp.MustCompile(`^FLT-[0-9]{6}$`)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		if err != nil {
			t.Fatalf("generate error: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("expected 4 digits, got %q", code)
		}
		if code[0] == '0' {
			t.Fatalf("expected code in [1000, 9999], got %q", code)
		}
	}
}

func TestGenerateOrderNumberFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		number, err := GenerateOrderNumber()
		if err != nil {
			t.Fatalf("generate error: %v", err)
		}
		if !orderNumberPattern.MatchString(number) {
			t.Fatalf("unexpected order number %q", number)
		}
	}
}
