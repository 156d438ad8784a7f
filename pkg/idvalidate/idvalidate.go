// Package idvalidate validates and formats the Indonesian identifiers
// SAKU entities carry: NPWP tax IDs, phone numbers, postal codes, bank
// account numbers, and NIB business license numbers.
package idvalidate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	phoneRe  = regexp.MustCompile(`^(\+62|62|0)?8[1-9][0-9]{6,11}$`)
	postalRe = regexp.MustCompile(`^\d{5}$`)
)

// digitsOnly strips every non-digit rune.
func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidNPWP checks a 15-digit NPWP, including the range check on the
// first two digits (01-39) the original validator applies.
func ValidNPWP(npwp string) bool {
	clean := digitsOnly(npwp)
	if len(clean) != 15 {
		return false
	}
	prefix, err := strconv.Atoi(clean[0:2])
	if err != nil {
		return false
	}
	return prefix >= 1 && prefix <= 39
}

// FormatNPWP renders a clean 15-digit NPWP as "XX.XXX.XXX.X-XXX.XXX". It
// returns the input unchanged if it isn't a valid 15-digit NPWP.
func FormatNPWP(npwp string) string {
	clean := digitsOnly(npwp)
	if len(clean) != 15 {
		return npwp
	}
	return clean[0:2] + "." + clean[2:5] + "." + clean[5:8] + "." + clean[8:9] + "-" + clean[9:12] + "." + clean[12:15]
}

// ValidPhoneNumber checks an Indonesian mobile number in any of the
// +62/62/0/bare-8 prefixed forms.
func ValidPhoneNumber(phone string) bool {
	return phoneRe.MatchString(phone)
}

// FormatPhoneNumber renders a phone number as "+62 812-3456-789" or, for
// local-prefixed numbers, "0812-3456-789".
func FormatPhoneNumber(phone string) string {
	clean := digitsOnly(phone)
	switch {
	case strings.HasPrefix(clean, "62"):
		number := clean[2:]
		if len(number) >= 9 {
			return "+62 " + number[0:3] + "-" + number[3:7] + "-" + number[7:]
		}
	case strings.HasPrefix(clean, "08"):
		number := clean[1:]
		if len(number) >= 9 {
			return "0" + number[0:3] + "-" + number[3:7] + "-" + number[7:]
		}
	}
	return phone
}

// ValidPostalCode checks a 5-digit Indonesian postal code.
func ValidPostalCode(code string) bool {
	return postalRe.MatchString(code)
}

var bankAccountLengths = map[string]int{
	"BCA":     10,
	"BNI":     10,
	"BRI":     15,
	"MANDIRI": 13,
}

// ValidBankAccount checks a bank account number is 10-16 digits, and
// matches the exact length known banks use when bankCode is given.
func ValidBankAccount(accountNumber, bankCode string) bool {
	clean := digitsOnly(accountNumber)
	if len(clean) < 10 || len(clean) > 16 {
		return false
	}
	if bankCode == "" {
		return true
	}
	if want, ok := bankAccountLengths[strings.ToUpper(bankCode)]; ok {
		return len(clean) == want
	}
	return true
}

// ValidNIB checks a 13-digit business license number (Nomor Induk Berusaha).
func ValidNIB(nib string) bool {
	return len(digitsOnly(nib)) == 13
}
