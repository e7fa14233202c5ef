package reconcile

// terminalOrderStatuses are order states after which a tracker row no longer
// needs refreshing.
var terminalOrderStatuses = map[string]bool{
	"Waiting for pickup": true,
	"Shipped":            true,
	"Canceled":           true,
	"Completed":          true,
}

// closedPurchaseStatuses are purchase states that likewise finish a row.
var closedPurchaseStatuses = map[string]bool{
	"CLOSED (CONFIRMED)": true,
	"CLOSED (BY STOCK)":  true,
}

// ComputeNewOrders returns the remote order ids not yet tracked, preserving
// the remote listing's order. It never returns an id present in tracked.
func ComputeNewOrders(allRemoteIDs, trackedIDs []string) []string {
	tracked := make(map[string]bool, len(trackedIDs))
	for _, id := range trackedIDs {
		tracked[id] = true
	}

	var newIDs []string
	for _, id := range allRemoteIDs {
		if !tracked[id] {
			newIDs = append(newIDs, id)
		}
	}
	return newIDs
}

// RefreshDone reports whether a row's refresh marker should be cleared:
// either the order reached a terminal status, or its purchase closed.
func RefreshDone(order OrderRecord, purchase PurchaseResult) bool {
	if terminalOrderStatuses[order.Status] {
		return true
	}
	return purchase.Available() && closedPurchaseStatuses[purchase.Record.Status]
}
