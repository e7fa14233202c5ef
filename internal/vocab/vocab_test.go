package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatusKnownCodes(t *testing.T) {
	assert.Equal(t, "Waiting for pickup", OrderStatus(20))
	assert.Equal(t, "New Order", OrderStatus(1))
	assert.Equal(t, "Canceled", OrderStatus(7))
	assert.Equal(t, "CHECK?", OrderStatus(0))
}

func TestOrderStatusUnknownCodeDegrades(t *testing.T) {
	assert.Equal(t, "Unknown", OrderStatus(42))
	assert.Equal(t, "Unknown", OrderStatus(-3))
}

func TestOrderTypeFallback(t *testing.T) {
	assert.Equal(t, "Computer", OrderType(1))
	assert.Equal(t, "NOT SET", OrderType(0))
	assert.Equal(t, "Unknown", OrderType(9))
}

func TestPurchaseSideLookupsFailOnUnknownValues(t *testing.T) {
	status, err := PurchaseStatus("2")
	require.NoError(t, err)
	assert.Equal(t, "CLOSED (CONFIRMED)", status)

	_, err = PurchaseStatus("4")
	assert.Error(t, err)

	typ, err := PurchaseType("3")
	require.NoError(t, err)
	assert.Equal(t, "OUT", typ)

	_, err = PurchaseType("computer")
	assert.Error(t, err)

	loc, err := ShipmentLocation("Btrn")
	require.NoError(t, err)
	assert.Equal(t, "Beer Sheva", loc)

	_, err = ShipmentLocation("Xtrn")
	assert.Error(t, err)
}
