package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"guardian/pkg/email"
)

func TestDeriveNameFromEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		first string
		last  string
	}{
		{"dotted local part", "jane.doe@example.com", "Jane", "Doe"},
		{"single word", "jane@example.com", "Jane", "User"},
		{"underscore separator", "jane_van_doe@example.com", "Jane", "Doe"},
		{"plus tag", "jane+consent@example.com", "Jane", "Consent"},
		{"no at sign", "jane.doe", "Jane", "Doe"},
		{"empty local part", "@example.com", "User", "User"},
		{"empty input", "", "User", "User"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first, last := email.DeriveNameFromEmail(tc.email)
			assert.Equal(t, tc.first, first)
			assert.Equal(t, tc.last, last)
		})
	}
}
