package models

import (
	"testing"

	"github.com/margh00b/woodtrack_backend/utils"
)

func TestCheckPassword(t *testing.T) {
	hash, err := utils.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if err := checkPassword(string(hash), "s3cret"); err != nil {
		t.Fatalf("expected matching password to pass, got %v", err)
	}
	if err := checkPassword(string(hash), "wrong"); err == nil {
		t.Fatal("expected wrong password to fail")
	}
	// A corrupt stored hash errors differently from a mismatch inside bcrypt;
	// both must read as bad credentials, never as a successful login.
	if err := checkPassword("not-a-bcrypt-hash", "s3cret"); err == nil {
		t.Fatal("expected malformed stored hash to fail")
	}
}
