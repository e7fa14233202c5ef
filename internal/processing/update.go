package processing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"

	"github.com/P3CHR/TMS-Order-Sync/internal/config"
	"github.com/P3CHR/TMS-Order-Sync/internal/reconcile"
	"github.com/P3CHR/TMS-Order-Sync/internal/retry"
	"github.com/P3CHR/TMS-Order-Sync/internal/sheets"
	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
)

// RunUpdatePhase refreshes every marked row, one order at a time, then
// flushes. Transport failures and order schema violations abort the phase;
// purchase parse failures only cost that order its purchase columns.
func RunUpdatePhase(ctx context.Context, backend Backend, store Store) (Summary, error) {
	log.Debug().Msg("Starting update phase")
	var summary Summary

	targets, err := retry.WithRetry(ctx, "select rows to refresh", config.DefaultResilienceConfig.SheetRead, func(ctx context.Context) ([]sheets.RefreshTarget, error) {
		return store.RowsNeedingRefresh(ctx)
	})
	if err != nil {
		return summary, fmt.Errorf("update phase: %w", err)
	}

	for _, target := range targets {
		order, purchase, err := refreshOrder(ctx, backend, target.OrderID)
		if err != nil {
			return summary, fmt.Errorf("update phase, order %s: %w", target.OrderID, err)
		}

		store.WriteRow(target.Row, order, purchase)
		summary.RowsUpdated++
		if order.Interruption == reconcile.InterruptFlagged {
			summary.InterruptedOrders = append(summary.InterruptedOrders, target.OrderID)
		}
		if order.ReceiptMissing {
			summary.ReceiptMissingOrders = append(summary.ReceiptMissingOrders, target.OrderID)
		}
		if order.PurchaseID != reconcile.NoPurchase && !purchase.Available() {
			summary.PurchaseParseFailures++
		}

		log.Info().
			Str("order_id", target.OrderID).
			Int("row", target.Row).
			Str("status", order.Status).
			Str("purchase", order.PurchaseSummary).
			Bool("purchase_data", purchase.Available()).
			Msg("Refreshed order row")
	}

	if err := flush(ctx, store); err != nil {
		return summary, fmt.Errorf("update phase: %w", err)
	}

	log.Info().
		Int("updated", summary.RowsUpdated).
		Int("purchase_parse_failures", summary.PurchaseParseFailures).
		Msg("Update phase complete")
	return summary, nil
}

// refreshOrder fetches and normalizes one order, plus its purchase when one
// is linked. A purchase that fails to parse degrades to "no purchase data";
// everything else propagates.
func refreshOrder(ctx context.Context, backend Backend, orderID string) (reconcile.OrderRecord, reconcile.PurchaseResult, error) {
	payload, err := retry.WithRetry(ctx, "fetch order", config.DefaultResilienceConfig.TMSRequest, func(ctx context.Context) (*tms.OrderPayload, error) {
		return backend.FetchOrder(ctx, orderID)
	})
	if err != nil {
		return reconcile.OrderRecord{}, reconcile.PurchaseResult{}, err
	}

	order, err := reconcile.NormalizeOrder(payload)
	if err != nil {
		return reconcile.OrderRecord{}, reconcile.PurchaseResult{}, err
	}

	if order.PurchaseID == reconcile.NoPurchase {
		return order, reconcile.PurchaseResult{}, nil
	}

	doc, err := retry.WithRetry(ctx, "fetch purchase", config.DefaultResilienceConfig.TMSRequest, func(ctx context.Context) (*html.Node, error) {
		return backend.FetchPurchase(ctx, order.PurchaseID)
	})
	if err != nil {
		return reconcile.OrderRecord{}, reconcile.PurchaseResult{}, err
	}

	purchase := reconcile.NormalizePurchase(doc)
	if !purchase.Available() {
		log.Error().
			Str("order_id", orderID).
			Int("purchase_id", order.PurchaseID).
			Str("reason", purchase.Reason).
			Msg("Failed to parse purchase page; continuing without purchase data")
	}
	return order, purchase, nil
}
