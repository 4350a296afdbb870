package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatInvoiceNumber(t *testing.T) {
	issued := time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC)

	number, err := FormatInvoiceNumber(DefaultInvoiceNumberTemplate, "ADS", issued, "k3v9q2xa")
	require.NoError(t, err)
	assert.Equal(t, "ADS-2026-0307-k3v9q2xa", number)
}

func TestFormatInvoiceNumber_Errors(t *testing.T) {
	issued := time.Now()

	_, err := FormatInvoiceNumber("", "ADS", issued, "abc")
	assert.Error(t, err)

	_, err = FormatInvoiceNumber(DefaultInvoiceNumberTemplate, " ", issued, "abc")
	assert.Error(t, err)

	_, err = FormatInvoiceNumber("{PREFIX}-{NOPE}", "ADS", issued, "abc")
	assert.Error(t, err)
}

func TestRandomSuffixShape(t *testing.T) {
	suffix := RandomSuffix()
	assert.Len(t, suffix, 8)
	for _, r := range suffix {
		assert.Contains(t, suffixAlphabet, string(r))
	}
}

func TestRoundAmount(t *testing.T) {
	assert.Equal(t, 44.1, RoundAmount(44.099999999999994))
	assert.Equal(t, 37.37, RoundAmount(245.0*18/118))
	assert.Equal(t, "INR 289.10", Amount("INR", 289.1))
}
