package format

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

const DefaultInvoiceNumberTemplate = "{PREFIX}-{YYYY}-{MM}{DD}-{RAND}"

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// RandomSuffix returns an 8-character base36 suffix. Collisions are
// accepted, not eliminated.
func RandomSuffix() string {
	var b strings.Builder
	for i := 0; i < 8; i++ {
		b.WriteByte(suffixAlphabet[rand.Intn(len(suffixAlphabet))])
	}
	return b.String()
}

// FormatInvoiceNumber formats a human-readable invoice number based on
// a template, prefix, issue time, and random suffix.
//
// This function is PURE:
// - No side effects
// - No DB access
// - Fully deterministic for a given suffix
func FormatInvoiceNumber(template, prefix string, issuedAt time.Time, suffix string) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if strings.TrimSpace(prefix) == "" {
		return "", fmt.Errorf("invoice number prefix is empty")
	}
	if suffix == "" {
		return "", fmt.Errorf("invoice number suffix is empty")
	}

	out := template

	out = strings.ReplaceAll(out, "{PREFIX}", strings.TrimSpace(prefix))

	// Date tokens
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))

	out = strings.ReplaceAll(out, "{RAND}", suffix)

	// Final safety check: unresolved tokens
	if strings.Contains(out, "{") || strings.Contains(out, "}") {
		return "", fmt.Errorf("unresolved token in invoice format: %s", out)
	}

	return out, nil
}

// RoundAmount pins a computed amount to 2 decimal places. It is only
// for display and serialization; the engine accumulates unrounded.
func RoundAmount(value float64) float64 {
	return math.Round(value*100) / 100
}

// Amount renders a monetary value with its currency code.
func Amount(currency string, value float64) string {
	return fmt.Sprintf("%s %.2f", currency, RoundAmount(value))
}
