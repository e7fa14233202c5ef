package reconcile

import "github.com/P3CHR/TMS-Order-Sync/internal/tms"

// internalOperator is the only user expected to touch orders in this flow.
const internalOperator = "Leon Pechr"

// CheckInterrupts inspects an order's process log and flags any order that
// was touched by someone other than the internal operator. An empty log is
// vacuously clean.
func CheckInterrupts(entries []tms.ProcessLogEntry) string {
	for _, entry := range entries {
		if entry.User != internalOperator {
			return InterruptFlagged
		}
	}
	return InterruptOK
}
