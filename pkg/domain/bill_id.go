package domain

import (
	"strings"
	"unicode/utf8"
)

// BillID is the external display identifier of a bill, e.g. "HR1234".
type BillID struct {
	Type   string
	Number string
}

// ParseBillID splits a display identifier into type and number. The first two
// runes are the type and the remainder is the number; the type is not checked
// against the known bill types, so "HRES5" parses as type "HR", number "ES5".
// Inputs shorter than two runes yield ok=false.
func ParseBillID(s string) (BillID, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if utf8.RuneCountInString(s) < 2 {
		return BillID{}, false
	}
	_, first := utf8.DecodeRuneInString(s)
	_, second := utf8.DecodeRuneInString(s[first:])
	split := first + second
	return BillID{Type: s[:split], Number: s[split:]}, true
}

// String renders the upper-cased display form.
func (id BillID) String() string {
	return strings.ToUpper(id.Type + id.Number)
}
