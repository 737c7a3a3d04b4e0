package validation

import (
	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used for numbers typed without a country code
const DefaultRegion = "BR"

// NormalizePhone returns the E.164 form of raw, or "" when it is not a valid number.
// It never rejects input; the schema has already judged the length.
func NormalizePhone(raw string) string {
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(num) || !phonenumbers.IsValidNumber(num) {
		return ""
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
