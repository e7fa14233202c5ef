// Package processing drives one reconciliation pass: an insert phase that
// appends newly discovered orders, then an update phase that refreshes every
// marked row. Each phase ends with its own flush, so a crash mid-update never
// loses insertions that already committed.
package processing

import (
	"context"

	"golang.org/x/net/html"

	"github.com/P3CHR/TMS-Order-Sync/internal/reconcile"
	"github.com/P3CHR/TMS-Order-Sync/internal/sheets"
	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
)

// Backend is the TMS side of a pass.
type Backend interface {
	FetchAllOrderIDs(ctx context.Context) ([]string, error)
	FetchOrder(ctx context.Context, orderID string) (*tms.OrderPayload, error)
	FetchPurchase(ctx context.Context, purchaseID int) (*html.Node, error)
}

// Store is the tracker side of a pass.
type Store interface {
	ListTrackedOrderIDs(ctx context.Context) ([]string, error)
	RowsNeedingRefresh(ctx context.Context) ([]sheets.RefreshTarget, error)
	AppendOrderIDs(ids []string) int
	WriteRow(row int, order reconcile.OrderRecord, purchase reconcile.PurchaseResult)
	Flush(ctx context.Context) error
}

// Summary collects what happened during the update phase, mostly so the
// notifier can report orders that need a human.
type Summary struct {
	RowsUpdated           int
	InterruptedOrders     []string
	ReceiptMissingOrders  []string
	PurchaseParseFailures int
}
