package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/P3CHR/TMS-Order-Sync/internal/config"
	"github.com/P3CHR/TMS-Order-Sync/internal/notifications"
	"github.com/P3CHR/TMS-Order-Sync/internal/processing"
	"github.com/P3CHR/TMS-Order-Sync/internal/retry"
	"github.com/P3CHR/TMS-Order-Sync/internal/sheets"
	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
)

func main() {
	log.Debug().Msg("Starting application")
	setupEnvironment()

	ctx := context.Background()
	tmsClient, tracker := initializeClients(ctx)
	notifier := initializeNotificationClient()

	interval := getEnvDuration("SYNC_INTERVAL", 10*time.Minute)
	log.Info().Dur("interval", interval).Msg("Starting TMS order sync. Running immediately and then on the interval...")

	runSyncPass(ctx, tmsClient, tracker, notifier)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		runSyncPass(ctx, tmsClient, tracker, notifier)
	}
}

func initializeClients(ctx context.Context) (*tms.Client, *sheets.Tracker) {
	log.Debug().Msg("Initializing clients")

	baseURL := getRequiredEnv("TMS_BASE_URL")
	username := getRequiredEnv("TMS_USERNAME")
	password := getRequiredEnv("TMS_PASSWORD")
	userID := getRequiredEnvInt("TMS_USER_ID")
	credsFile := getEnvWithDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	spreadsheetID := getRequiredEnv("SPREADSHEET_ID")
	sheetName := getEnvWithDefault("SHEET_NAME", "Tracker")

	tmsClient := tms.NewClient(baseURL, username, password, userID)
	_, err := retry.WithRetry(ctx, "login", config.DefaultResilienceConfig.TMSRequest, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, tmsClient.Login(ctx)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to log in to TMS")
	}

	sheetsClient, err := sheets.NewClient(ctx, credsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	log.Debug().Msg("Clients initialized successfully")
	return tmsClient, sheets.NewTracker(sheetsClient, spreadsheetID, sheetName)
}

func initializeNotificationClient() *notifications.Client {
	enabled := getEnvWithDefault("NTFY_ENABLED", "false") == "true"
	baseURL := getEnvWithDefault("NTFY_URL", "https://ntfy.sh")
	topic := getEnvWithDefault("NTFY_TOPIC", "tms-order-sync")

	if enabled {
		log.Info().Str("topic", topic).Msg("Notifications enabled")
	} else {
		log.Debug().Msg("Notifications disabled")
	}

	return notifications.NewClient(baseURL, topic, enabled)
}

// runSyncPass does one full reconciliation: the insert phase appends newly
// discovered orders and flushes, then the update phase refreshes marked rows
// and flushes. An update failure never loses the insert phase's rows.
func runSyncPass(ctx context.Context, tmsClient *tms.Client, tracker *sheets.Tracker, notifier *notifications.Client) {
	log.Debug().Msg("Starting sync pass")
	tmsClient.ResetAPICallCount()

	newOrders, err := processing.RunInsertPhase(ctx, tmsClient, tracker)
	if err != nil {
		log.Error().Err(err).Msg("Insert phase failed; skipping update phase this pass")
		return
	}

	summary, err := processing.RunUpdatePhase(ctx, tmsClient, tracker)
	if err != nil {
		// The insert phase already flushed; its rows are safe.
		log.Error().Err(err).Msg("Update phase failed")
	}

	notifier.NotifyRunSummary(ctx, newOrders, summary.InterruptedOrders, summary.ReceiptMissingOrders)

	log.Info().
		Int("new_orders", newOrders).
		Int("rows_updated", summary.RowsUpdated).
		Int("purchase_parse_failures", summary.PurchaseParseFailures).
		Int64("api_calls", tmsClient.GetAPICallCount()).
		Msg("Sync pass complete")
}
