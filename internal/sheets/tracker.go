package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/sheets/v4"

	"github.com/P3CHR/TMS-Order-Sync/internal/reconcile"
)

// Tracker column layout. Order ids live in column A from row 2, contiguous
// until the first empty cell. Column S carries the needs-refresh marker and
// column T the receipt flag.
const (
	firstDataRow    = 2
	markerColumn    = "S"
	markerColumnIdx = 18
)

// RefreshTarget is one tracked row whose marker requests a refresh.
type RefreshTarget struct {
	OrderID string
	Row     int
}

// Tracker is the storage side of the reconciliation: a spreadsheet mapping
// order ids to rows. Writes are staged in memory and only become durable at
// Flush, giving the driver its two checkpoint boundaries per run.
type Tracker struct {
	client        *Client
	spreadsheetID string
	sheetName     string

	tracked  map[string]bool
	rowCount int
	pending  []*sheets.ValueRange
}

func NewTracker(client *Client, spreadsheetID, sheetName string) *Tracker {
	return &Tracker{
		client:        client,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		tracked:       make(map[string]bool),
	}
}

// ListTrackedOrderIDs reads column A from the first data row down to the
// first empty cell and remembers the set for later appends.
func (t *Tracker) ListTrackedOrderIDs(ctx context.Context) ([]string, error) {
	readRange := fmt.Sprintf("%s!A%d:A", t.sheetName, firstDataRow)
	values, err := t.client.ReadRange(ctx, t.spreadsheetID, readRange)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked order ids: %w", err)
	}

	ids := idsFromColumn(values)
	t.tracked = make(map[string]bool, len(ids))
	for _, id := range ids {
		t.tracked[id] = true
	}
	t.rowCount = len(ids)

	log.Debug().Int("tracked", len(ids)).Msg("Read tracked order ids")
	return ids, nil
}

// RowsNeedingRefresh returns the tracked rows whose marker cell is set, in
// sheet order.
func (t *Tracker) RowsNeedingRefresh(ctx context.Context) ([]RefreshTarget, error) {
	readRange := fmt.Sprintf("%s!A%d:%s", t.sheetName, firstDataRow, markerColumn)
	values, err := t.client.ReadRange(ctx, t.spreadsheetID, readRange)
	if err != nil {
		return nil, fmt.Errorf("failed to read refresh markers: %w", err)
	}

	targets := refreshTargets(values)
	log.Debug().Int("targets", len(targets)).Msg("Selected rows needing refresh")
	return targets, nil
}

// AppendOrderIDs stages new ids after the last tracked row, in the order
// given, skipping any id already tracked or already staged. Returns the
// number staged.
func (t *Tracker) AppendOrderIDs(ids []string) int {
	startRow := firstDataRow + t.rowCount
	var cells [][]interface{}
	for _, id := range ids {
		if t.tracked[id] {
			log.Debug().Str("order_id", id).Msg("Skipping already tracked order id")
			continue
		}
		cells = append(cells, []interface{}{id})
		t.tracked[id] = true
		t.rowCount++
	}
	if len(cells) == 0 {
		return 0
	}

	t.pending = append(t.pending, &sheets.ValueRange{
		Range:  fmt.Sprintf("%s!A%d:A%d", t.sheetName, startRow, startRow+len(cells)-1),
		Values: cells,
	})
	log.Debug().Int("staged", len(cells)).Int("start_row", startRow).Msg("Staged new order ids")
	return len(cells)
}

// WriteRow stages a refreshed row: the order columns always, the purchase
// columns only when purchase data is available, and a marker clear when the
// row is done being refreshed.
func (t *Tracker) WriteRow(row int, order reconcile.OrderRecord, purchase reconcile.PurchaseResult) {
	t.pending = append(t.pending, rowValueRanges(t.sheetName, row, order, purchase)...)
}

// Flush commits every staged write in one batch. This is the durability
// checkpoint: after Flush returns nil, the staged rows survive a crash.
func (t *Tracker) Flush(ctx context.Context) error {
	if len(t.pending) == 0 {
		log.Debug().Msg("No staged writes to flush")
		return nil
	}

	if err := t.client.BatchUpdate(ctx, t.spreadsheetID, t.pending); err != nil {
		return fmt.Errorf("failed to flush %d staged ranges: %w", len(t.pending), err)
	}

	log.Info().Int("ranges", len(t.pending)).Msg("Flushed staged writes")
	t.pending = nil
	return nil
}

// rowValueRanges builds the value ranges for one refreshed row.
func rowValueRanges(sheetName string, row int, order reconcile.OrderRecord, purchase reconcile.PurchaseResult) []*sheets.ValueRange {
	receiptFlag := "OK!"
	if order.ReceiptMissing {
		receiptFlag = "UPLOAD_RECEIPT!"
	}

	ranges := []*sheets.ValueRange{
		{
			Range: fmt.Sprintf("%s!B%d:K%d", sheetName, row, row),
			Values: [][]interface{}{{
				order.DateAdded,
				order.Interruption,
				order.Status,
				order.OrderType,
				order.CustomerName,
				order.Telephone,
				order.PaymentRemaining,
				order.ItemCount,
				order.Priority,
				order.PurchaseSummary,
			}},
		},
		{
			Range:  fmt.Sprintf("%s!T%d", sheetName, row),
			Values: [][]interface{}{{receiptFlag}},
		},
	}

	if purchase.Available() {
		record := purchase.Record
		ranges = append(ranges, &sheets.ValueRange{
			Range: fmt.Sprintf("%s!L%d:R%d", sheetName, row, row),
			Values: [][]interface{}{{
				record.PurchaseNumber,
				record.Remark,
				record.Status,
				record.OrderType,
				record.Priority,
				record.ShipmentLocation,
				record.Active,
			}},
		})
	}

	if reconcile.RefreshDone(order, purchase) {
		ranges = append(ranges, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", sheetName, markerColumn, row),
			Values: [][]interface{}{{false}},
		})
	}

	return ranges
}

// idsFromColumn collects first-column values until the first empty cell.
func idsFromColumn(values [][]interface{}) []string {
	var ids []string
	for _, row := range values {
		id := cellString(row, 0)
		if id == "" {
			break
		}
		ids = append(ids, id)
	}
	return ids
}

// refreshTargets picks the rows whose marker cell is truthy, stopping at the
// first row without an order id.
func refreshTargets(values [][]interface{}) []RefreshTarget {
	var targets []RefreshTarget
	for i, row := range values {
		id := cellString(row, 0)
		if id == "" {
			break
		}
		if markerSet(row, markerColumnIdx) {
			targets = append(targets, RefreshTarget{OrderID: id, Row: firstDataRow + i})
		}
	}
	return targets
}

// markerSet treats a cell as requesting a refresh unless it is empty or a
// spreadsheet-false value.
func markerSet(row []interface{}, index int) bool {
	value := cellString(row, index)
	switch strings.ToUpper(value) {
	case "", "FALSE", "0":
		return false
	}
	return true
}

func cellString(row []interface{}, index int) string {
	if index < len(row) && row[index] != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
	}
	return ""
}
