// Package upi builds UPI payment deep links and renders them as QR codes.
package upi

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yeqown/go-qrcode/v2"
	"github.com/yeqown/go-qrcode/writer/standard"
)

// DefaultCurrency is used when Params.Currency is empty.
const DefaultCurrency = "INR"

var ErrMissingPayee = errors.New("payee UPI ID is required")

// Params describes a single payment request.
type Params struct {
	PayeeVPA  string  // Receiver's virtual payment address, e.g. "asha@okbank"
	PayeeName string  // Shown by the payer's app
	Amount    float64 // Omitted from the link when <= 0
	Note      string  // Transaction note
	Currency  string
}

// Link returns a upi://pay URI for p. Parameters keep the order apps expect:
// pa, pn, cu, am, tn.
func Link(p Params) (string, error) {
	vpa := strings.TrimSpace(p.PayeeVPA)
	if vpa == "" {
		return "", ErrMissingPayee
	}
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	var b strings.Builder
	b.WriteString("upi://pay?pa=")
	b.WriteString(escape(vpa))
	b.WriteString("&pn=")
	b.WriteString(escape(p.PayeeName))
	b.WriteString("&cu=")
	b.WriteString(escape(currency))
	if p.Amount > 0 {
		b.WriteString("&am=")
		b.WriteString(FormatAmount(p.Amount))
	}
	if p.Note != "" {
		b.WriteString("&tn=")
		b.WriteString(escape(p.Note))
	}
	return b.String(), nil
}

// FormatAmount renders amount with exactly two decimal places.
func FormatAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// escape query-escapes s with %20 for spaces and a literal '@', which is how
// payment apps print VPAs.
func escape(s string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.ReplaceAll(escaped, "%40", "@")
}

// QRCode writes link as a JPEG QR code to path.
func QRCode(link, path string) error {
	qrc, err := qrcode.New(link)
	if err != nil {
		return fmt.Errorf("could not generate QR code: %w", err)
	}

	w, err := standard.New(path)
	if err != nil {
		return fmt.Errorf("could not create QR writer: %w", err)
	}

	// Save closes the writer.
	if err := qrc.Save(w); err != nil {
		return fmt.Errorf("could not save QR code: %w", err)
	}
	return nil
}
