package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
)

func TestSettlePaymentBankTransfer(t *testing.T) {
	history := []tms.Charge{
		{Success: true, Total: 50, PriorityID: 3, Type: "bank_transfer"},
	}

	remaining, receiptMissing := SettlePayment(history, 200)
	assert.Equal(t, 150, remaining)
	assert.False(t, receiptMissing)
}

func TestSettlePaymentCashWithoutApprovalNeedsReceipt(t *testing.T) {
	history := []tms.Charge{
		{Success: true, Total: 200, PriorityID: 0, Type: "cash"},
	}

	remaining, receiptMissing := SettlePayment(history, 200)
	assert.Equal(t, 0, remaining)
	assert.True(t, receiptMissing)
}

func TestSettlePaymentFailedChargesDoNotReduceBalance(t *testing.T) {
	history := []tms.Charge{
		{Success: false, Total: 120, PriorityID: 0, Type: "cash"},
		{Success: true, Total: 30, PriorityID: 5, Type: "bank_transfer"},
	}

	remaining, receiptMissing := SettlePayment(history, 100)
	assert.Equal(t, 70, remaining)
	assert.False(t, receiptMissing, "failed charge must not set the receipt flag")
}

func TestSettlePaymentNeverNegative(t *testing.T) {
	history := []tms.Charge{
		{Success: true, Total: 300, PriorityID: 1, Type: "bank_transfer"},
	}

	remaining, _ := SettlePayment(history, 200)
	assert.Equal(t, 0, remaining)
}

func TestSettlePaymentTruncatesFractionsTowardZero(t *testing.T) {
	history := []tms.Charge{
		{Success: true, Total: tms.Amount(49.25), PriorityID: 1, Type: "bank_transfer"},
	}

	remaining, _ := SettlePayment(history, 200)
	assert.Equal(t, 150, remaining)
}

func TestSettlePaymentMonotonicUnderMoreCharges(t *testing.T) {
	var history []tms.Charge
	prev := 1000
	for i := 0; i < 10; i++ {
		history = append(history, tms.Charge{Success: true, Total: 37, PriorityID: 1, Type: "bank_transfer"})
		remaining, _ := SettlePayment(history, 1000)
		assert.LessOrEqual(t, remaining, prev)
		assert.GreaterOrEqual(t, remaining, 0)
		prev = remaining
	}
}

func TestSettlePaymentReceiptFlagStickyAndOrderIndependent(t *testing.T) {
	cash := tms.Charge{Success: true, Total: 10, PriorityID: 0, Type: "cash"}
	bank := tms.Charge{Success: true, Total: 20, PriorityID: 4, Type: "bank_transfer"}

	_, a := SettlePayment([]tms.Charge{cash, bank}, 100)
	_, b := SettlePayment([]tms.Charge{bank, cash}, 100)
	assert.True(t, a)
	assert.True(t, b)

	_, c := SettlePayment([]tms.Charge{bank, bank}, 100)
	assert.False(t, c)
}

func TestSettlePaymentEmptyHistory(t *testing.T) {
	remaining, receiptMissing := SettlePayment(nil, 80)
	assert.Equal(t, 80, remaining)
	assert.False(t, receiptMissing)
}
