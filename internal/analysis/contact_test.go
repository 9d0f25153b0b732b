package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckContact(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantPhone bool
		wantEmail bool
	}{
		{"both", "Jane Doe | +1 (555) 123-4567 | jane@example.com", true, true},
		{"email only", "Reach me at jane.doe+cv@mail.example.org", false, true},
		{"phone with dots", "Tel: 555.123.4567", true, false},
		{"international", "+90 532 123 45678", true, false},
		{"too few digits", "Call 555-1234", false, false},
		{"bad tld", "jane@example.c", false, false},
		{"nothing", "Experienced engineer", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, email := CheckContact(tt.text)
			assert.Equal(t, tt.wantPhone, phone)
			assert.Equal(t, tt.wantEmail, email)
		})
	}
}
