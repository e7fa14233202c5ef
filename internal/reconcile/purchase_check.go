package reconcile

import "github.com/P3CHR/TMS-Order-Sync/internal/tms"

// sentinelItemName is an internal bookkeeping line the operator adds to
// orders; it never belongs to the order's purchase batch and is exempt from
// the consistency check.
const sentinelItemName = "TMS - לאון"

// CheckPurchase validates that every line item on an order references the
// same purchase batch. It returns the summary text for the tracker and the
// shared purchase id, or NoPurchase when the order has no items or its first
// item is unlinked.
func CheckPurchase(items []tms.LineItem) (string, int) {
	if len(items) == 0 {
		return PurchaseIndexError, NoPurchase
	}
	purchaseID := items[0].PurchaseID
	if purchaseID == 0 {
		return PurchaseNone, NoPurchase
	}
	for _, item := range items {
		if item.PurchaseID != purchaseID && item.Name != sentinelItemName {
			return PurchaseDiff, purchaseID
		}
	}
	return PurchaseOK, purchaseID
}
