// Package upi builds UPI payment deep links.
package upi

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the only currency UPI links are issued in.
const Currency = "INR"

var (
	ErrMissingVPA    = errors.New("payee has not linked a UPI ID")
	ErrInvalidAmount = errors.New("payment amount must be positive")
)

// Link returns upi://pay?pa=<vpa>&pn=<name>&am=<amount>&cu=INR.
// Parameters keep that order; the amount is written with two decimals.
func Link(vpa, payeeName string, amount decimal.Decimal) (string, error) {
	vpa = strings.TrimSpace(vpa)
	if vpa == "" {
		return "", ErrMissingVPA
	}
	rounded := amount.Round(2)
	if !rounded.IsPositive() {
		return "", ErrInvalidAmount
	}

	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(escape(vpa))
	b.WriteString("&pn=")
	b.WriteString(escape(payeeName))
	b.WriteString("&am=")
	b.WriteString(rounded.StringFixed(2))
	b.WriteString("&cu=")
	b.WriteString(Currency)
	return b.String(), nil
}

// escape percent-encodes s byte by byte the way encodeURIComponent does.
// ASCII letters, digits and -_.!~*'() stay literal.
func escape(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
