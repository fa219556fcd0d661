package models

import (
	"testing"
	"time"
)

func TestChallengeExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	challenge := OTPChallenge{ExpiresAt: now.Add(5 * time.Minute)}

	if challenge.Expired(now) {
		t.Fatalf("expected fresh challenge to be valid")
	}
	if challenge.Expired(now.Add(4 * time.Minute)) {
		t.Fatalf("expected challenge to be valid within the window")
	}
	if !challenge.Expired(now.Add(5*time.Minute + time.Second)) {
		t.Fatalf("expected challenge to be expired one second past the window")
	}
}

func TestAccountProActive(t *testing.T) {
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	cases := []struct {
		name    string
		account Account
		want    bool
	}{
		{"active", Account{IsPro: true, ProExpiresAt: &future}, true},
		{"expired", Account{IsPro: true, ProExpiresAt: &past}, false},
		{"never subscribed", Account{}, false},
		{"flag without expiry", Account{IsPro: true}, false},
	}

	for _, tc := range cases {
		if got := tc.account.ProActive(now); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
