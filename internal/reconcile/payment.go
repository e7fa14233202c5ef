package reconcile

import "github.com/P3CHR/TMS-Order-Sync/internal/tms"

// SettlePayment walks an order's charge history against its total and
// returns the outstanding balance plus whether a manual receipt upload is
// still owed. Only successful charges reduce the balance. A successful
// charge with no linked approval id that is not a bank transfer is cash-like
// and needs a receipt; the flag is sticky across the whole history.
//
// The remainder truncates toward zero and never goes negative, matching the
// whole-unit balances the tracker has always shown.
func SettlePayment(history []tms.Charge, total float64) (remaining int, receiptMissing bool) {
	left := total
	for _, charge := range history {
		if !charge.Success {
			continue
		}
		left -= float64(charge.Total)
		if charge.PriorityID == 0 && charge.Type != "bank_transfer" {
			receiptMissing = true
		}
	}
	if left < 0 {
		left = 0
	}
	return int(left), receiptMissing
}
