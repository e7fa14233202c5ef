package processing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/P3CHR/TMS-Order-Sync/internal/config"
	"github.com/P3CHR/TMS-Order-Sync/internal/reconcile"
	"github.com/P3CHR/TMS-Order-Sync/internal/retry"
)

// RunInsertPhase discovers orders not yet tracked and appends them to the
// sheet in discovery order, then flushes. The flush here is a deliberate
// checkpoint: the update phase may still fail without losing these rows.
func RunInsertPhase(ctx context.Context, backend Backend, store Store) (int, error) {
	log.Debug().Msg("Starting insert phase")

	allIDs, err := retry.WithRetry(ctx, "fetch order listing", config.DefaultResilienceConfig.TMSRequest, func(ctx context.Context) ([]string, error) {
		return backend.FetchAllOrderIDs(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("insert phase: %w", err)
	}

	trackedIDs, err := retry.WithRetry(ctx, "list tracked orders", config.DefaultResilienceConfig.SheetRead, func(ctx context.Context) ([]string, error) {
		return store.ListTrackedOrderIDs(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("insert phase: %w", err)
	}

	newIDs := reconcile.ComputeNewOrders(allIDs, trackedIDs)
	log.Debug().
		Int("remote", len(allIDs)).
		Int("tracked", len(trackedIDs)).
		Int("new", len(newIDs)).
		Msg("Computed new order set")

	if len(newIDs) == 0 {
		log.Debug().Msg("No new orders to track")
		return 0, nil
	}

	appended := store.AppendOrderIDs(newIDs)
	if err := flush(ctx, store); err != nil {
		return 0, fmt.Errorf("insert phase: %w", err)
	}

	log.Info().
		Int("appended", appended).
		Msg("Insert phase complete")
	return appended, nil
}

func flush(ctx context.Context, store Store) error {
	_, err := retry.WithRetry(ctx, "flush tracker", config.DefaultResilienceConfig.SheetWrite, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, store.Flush(ctx)
	})
	return err
}
