// Package reconcile turns raw TMS payloads into the flat records the tracker
// sheet stores, and decides which orders are new and which rows are done
// being refreshed.
package reconcile

// Interruption flag values written to the tracker.
const (
	InterruptOK      = "OK!"
	InterruptFlagged = "Check Interrupt!"
)

// Purchase summary values written to the tracker.
const (
	PurchaseOK         = "Purchase OK"
	PurchaseDiff       = "CHECK PURCHASE DIFF"
	PurchaseNone       = "NO PURCHASE"
	PurchaseIndexError = "INDEX ERROR"
)

// NoPurchase is the PurchaseID sentinel for orders without a linked purchase.
const NoPurchase = -1

// OrderRecord is the flat snapshot of one order at fetch time.
type OrderRecord struct {
	DateAdded        string
	Status           string
	PaymentRemaining int
	ReceiptMissing   bool
	Interruption     string
	OrderType        string
	CustomerName     string
	Telephone        string
	Priority         int
	ItemCount        int
	PurchaseSummary  string
	PurchaseID       int
}

// PurchaseRecord is the flat snapshot of one purchase detail page.
type PurchaseRecord struct {
	PurchaseNumber   string
	Remark           string
	Status           string
	OrderType        string
	Priority         string
	ShipmentLocation string
	Active           string
}

// PurchaseResult is either a populated purchase record or an explicit
// "no purchase data available" outcome with the reason it failed. A partial
// record is worse than none: downstream readers treat absence as "unknown,
// do not overwrite".
type PurchaseResult struct {
	Record *PurchaseRecord
	Reason string
}

// Available reports whether a purchase record was produced.
func (r PurchaseResult) Available() bool {
	return r.Record != nil
}

func unavailable(reason string) PurchaseResult {
	return PurchaseResult{Reason: reason}
}
