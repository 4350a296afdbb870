package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeOp(t *testing.T) {
	op, err := DecodeOp([]byte(`{"type":"setLineQuantity","id":"line-1","quantity":3}`))
	require.NoError(t, err)

	qty, ok := op.(SetLineQuantity)
	require.True(t, ok)
	assert.Equal(t, "line-1", qty.ID)
	assert.Equal(t, 3.0, qty.Quantity)
}

func TestDecodeOpSelectClient(t *testing.T) {
	op, err := DecodeOp([]byte(`{"type":"selectClient","clientId":"cl-aurora-001"}`))
	require.NoError(t, err)

	sel, ok := op.(SelectClient)
	require.True(t, ok)
	assert.Equal(t, "cl-aurora-001", sel.ClientID)
}

func TestDecodeOpUnknownType(t *testing.T) {
	_, err := DecodeOp([]byte(`{"type":"mystery"}`))
	assert.ErrorIs(t, err, ErrUnknownOp)
}

func TestDecodeOpMalformedPayload(t *testing.T) {
	_, err := DecodeOp([]byte(`{"type":`))
	assert.Error(t, err)
}
