package models

import (
	"math/rand"
	"strings"
	"unicode"
)

// Profile is the personal data shown on "Min profil"
type Profile struct {
	FirstName string
	LastName  string
	Phone     string
}

// FullName is how the account info on the start page renders the name
func (p Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// RandomDigits returns n random decimal digits
func RandomDigits(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.Intn(10)))
	}
	return b.String()
}

// RandomPhoneNumber returns a Norwegian number formatted as "+47 12 34 56 78"
func RandomPhoneNumber() string {
	groups := make([]string, 4)
	for i := range groups {
		groups[i] = RandomDigits(2)
	}
	return "+47 " + strings.Join(groups, " ")
}

// UnformatPhoneNumber removes all whitespace, which is how the number is typed
func UnformatPhoneNumber(formatted string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, formatted)
}
