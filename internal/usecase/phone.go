package usecase

import "strings"

// minDigitsByCallingCode holds the minimum national-number digit count keyed
// by international calling code. Not exhaustive; unknown prefixes fall back to
// the generic minimum.
var minDigitsByCallingCode = map[string]int{
	"1":   10, // NANP
	"30":  10, // Greece
	"31":  9,  // Netherlands
	"33":  9,  // France
	"34":  9,  // Spain
	"39":  9,  // Italy
	"44":  10, // UK
	"49":  10, // Germany
	"355": 9,  // Albania
	"383": 8,  // Kosovo
	"389": 8,  // North Macedonia
}

const genericMinDigits = 8

// PhoneComplete is a completeness check, not full validation: the number must
// carry at least the minimum digit count for its detected calling code, or
// the generic minimum when no known prefix matches.
func PhoneComplete(phone string) bool {
	s := strings.TrimSpace(phone)
	international := strings.HasPrefix(s, "+") || strings.HasPrefix(s, "00")

	var digits []byte
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	d := string(digits)
	d = strings.TrimPrefix(d, "00")
	if d == "" {
		return false
	}

	if !international {
		return len(d) >= genericMinDigits
	}

	// Longest-prefix match: calling codes are 1-3 digits.
	for l := 3; l >= 1; l-- {
		if l > len(d) {
			continue
		}
		if min, ok := minDigitsByCallingCode[d[:l]]; ok {
			return len(d)-l >= min
		}
	}
	return len(d) >= genericMinDigits
}
