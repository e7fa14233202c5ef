package reconcile

import (
	"fmt"

	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
	"github.com/P3CHR/TMS-Order-Sync/internal/vocab"
)

// NormalizeOrder flattens a validated raw order payload into an OrderRecord.
// It is a pure function of the payload; a payload that fails validation is a
// schema violation and propagates rather than producing fabricated fields.
func NormalizeOrder(payload *tms.OrderPayload) (OrderRecord, error) {
	if err := payload.Validate(); err != nil {
		return OrderRecord{}, fmt.Errorf("cannot normalize order: %w", err)
	}

	remaining, receiptMissing := SettlePayment(payload.ChargeHistory, payload.Total())
	summary, purchaseID := CheckPurchase(payload.OrderProducts)

	return OrderRecord{
		DateAdded:        *payload.DateAdded,
		Status:           vocab.OrderStatus(*payload.OrderStatusID),
		PaymentRemaining: remaining,
		ReceiptMissing:   receiptMissing,
		Interruption:     CheckInterrupts(payload.ProcessLog),
		OrderType:        vocab.OrderType(*payload.OrderTypeID),
		CustomerName:     *payload.Firstname + " " + *payload.Lastname,
		Telephone:        *payload.Telephone,
		Priority:         *payload.PriorityID,
		ItemCount:        len(payload.OrderProducts),
		PurchaseSummary:  summary,
		PurchaseID:       purchaseID,
	}, nil
}
