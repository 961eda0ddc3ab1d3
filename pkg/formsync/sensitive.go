package formsync

import "strings"

// sensitiveIndicators are substrings that commonly denote secret or PII
// data in field names. The match is a heuristic for a development-mode
// diagnostic, not an enforcement mechanism; matched fields are still
// published unless separately excluded.
var sensitiveIndicators = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"apikey",
	"api_key",
	"api-key",
	"auth",
	"bearer",
	"credential",
	"privatekey",
	"private_key",
	"ssn",
	"social_security",
	"creditcard",
	"credit_card",
	"cardnumber",
	"card_number",
	"cvv",
	"cvc",
}

// SensitiveFieldName reports whether a field name matches the
// sensitive-name heuristic (case-insensitive substring match).
func SensitiveFieldName(name string) bool {
	lower := strings.ToLower(name)
	for _, indicator := range sensitiveIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
