package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhoneComplete(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"", false},
		{"   ", false},
		{"+1 212 555 0100", true},      // NANP: 10 national digits
		{"+1 212 555", false},          // too short for +1
		{"+44 20 7946 0958", true},     // UK
		{"+44 20 79", false},           //
		{"+355 69 123 4567", true},     // Albania: 9 digits
		{"+355 69 123", false},         //
		{"0044 20 7946 0958", true},    // 00 prefix equals +
		{"069 123 4567", true},         // local format, generic minimum
		{"12345", false},               // below generic minimum
		{"+999 12345678", true},        // unknown code falls back to generic
		{"(212) 555-0100", true},       // punctuation stripped
		{"not a phone number", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PhoneComplete(tc.phone), "phone %q", tc.phone)
	}
}
