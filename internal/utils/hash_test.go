package utils

import "testing"

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !CheckPassword(hash, "secret") {
		t.Fatalf("expected password to match")
	}
	if CheckPassword(hash, "wrong") {
		t.Fatalf("expected password mismatch")
	}
}

func TestOTPHashing(t *testing.T) {
	hash, err := HashOTP("4821")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	if !CheckOTP(hash, "4821") {
		t.Fatalf("expected code to match")
	}
	if CheckOTP(hash, "4822") {
		t.Fatalf("expected code mismatch")
	}
}
