package models

import (
	"errors"
	"testing"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		user    string
		email   string
		wantErr bool
	}{
		{"valid", "Alice", "alice@example.com", false},
		{"surrounding spaces", "Alice", "  alice@example.com ", false},
		{"empty name", " ", "alice@example.com", true},
		{"empty email", "Alice", "", true},
		{"no at sign", "Alice", "alice.example.com", true},
		{"display name", "Alice", "Alice <alice@example.com>", true},
		{"angle brackets only", "Alice", "<alice@example.com>", true},
		{"quoted display name", "Alice", `"Alice" <alice@example.com>`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.user, tt.email)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateProfile(%q, %q) = %v, wantErr %v", tt.user, tt.email, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeEmail = %q, want alice@example.com", got)
	}
}
