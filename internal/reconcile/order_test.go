package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func makeOrderPayload() *tms.OrderPayload {
	var payload tms.OrderPayload
	payload.DateAdded = strPtr("2026-01-04 09:12:00")
	payload.OrderStatusID = intPtr(20)
	payload.OrderTypeID = intPtr(1)
	payload.Firstname = strPtr("Dana")
	payload.Lastname = strPtr("Mizrahi")
	payload.Telephone = strPtr("050-1234567")
	payload.PriorityID = intPtr(2)
	payload.ChargeHistory = []tms.Charge{
		{Success: true, Total: 50, PriorityID: 7, Type: "bank_transfer"},
	}
	payload.OrderProducts = []tms.LineItem{
		{Name: "PC Tower", PurchaseID: 5},
		{Name: "Monitor", PurchaseID: 5},
	}
	payload.ProcessLog = []tms.ProcessLogEntry{{User: "Leon Pechr"}}
	payload.SetTotal(200)
	return &payload
}

func TestNormalizeOrder(t *testing.T) {
	record, err := NormalizeOrder(makeOrderPayload())
	require.NoError(t, err)

	assert.Equal(t, "2026-01-04 09:12:00", record.DateAdded)
	assert.Equal(t, "Waiting for pickup", record.Status)
	assert.Equal(t, 150, record.PaymentRemaining)
	assert.False(t, record.ReceiptMissing)
	assert.Equal(t, InterruptOK, record.Interruption)
	assert.Equal(t, "Computer", record.OrderType)
	assert.Equal(t, "Dana Mizrahi", record.CustomerName)
	assert.Equal(t, "050-1234567", record.Telephone)
	assert.Equal(t, 2, record.Priority)
	assert.Equal(t, 2, record.ItemCount)
	assert.Equal(t, PurchaseOK, record.PurchaseSummary)
	assert.Equal(t, 5, record.PurchaseID)
}

func TestNormalizeOrderUnknownCodesDegrade(t *testing.T) {
	payload := makeOrderPayload()
	payload.OrderStatusID = intPtr(99)
	payload.OrderTypeID = intPtr(12)

	record, err := NormalizeOrder(payload)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", record.Status)
	assert.Equal(t, "Unknown", record.OrderType)
}

func TestNormalizeOrderMissingFieldPropagates(t *testing.T) {
	payload := makeOrderPayload()
	payload.Telephone = nil

	_, err := NormalizeOrder(payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telephone")
}

func TestNormalizeOrderPurchaseInvariant(t *testing.T) {
	payload := makeOrderPayload()
	payload.OrderProducts = []tms.LineItem{}

	record, err := NormalizeOrder(payload)
	require.NoError(t, err)
	assert.Equal(t, PurchaseIndexError, record.PurchaseSummary)
	assert.Equal(t, NoPurchase, record.PurchaseID)
	assert.Equal(t, 0, record.ItemCount)

	payload.OrderProducts = []tms.LineItem{{Name: "PC Tower", PurchaseID: 0}}
	record, err = NormalizeOrder(payload)
	require.NoError(t, err)
	assert.Equal(t, PurchaseNone, record.PurchaseSummary)
	assert.Equal(t, NoPurchase, record.PurchaseID)
}
