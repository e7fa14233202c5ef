package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/P3CHR/TMS-Order-Sync/internal/tms"
)

func TestCheckPurchaseEmptyItems(t *testing.T) {
	summary, id := CheckPurchase(nil)
	assert.Equal(t, PurchaseIndexError, summary)
	assert.Equal(t, NoPurchase, id)
}

func TestCheckPurchaseFirstItemUnlinked(t *testing.T) {
	items := []tms.LineItem{
		{Name: "PC Tower", PurchaseID: 0},
		{Name: "Monitor", PurchaseID: 5},
	}
	summary, id := CheckPurchase(items)
	assert.Equal(t, PurchaseNone, summary)
	assert.Equal(t, NoPurchase, id)
}

func TestCheckPurchaseAllItemsShareOneBatch(t *testing.T) {
	items := []tms.LineItem{
		{Name: "PC Tower", PurchaseID: 5},
		{Name: "Monitor", PurchaseID: 5},
	}
	summary, id := CheckPurchase(items)
	assert.Equal(t, PurchaseOK, summary)
	assert.Equal(t, 5, id)
}

func TestCheckPurchaseDivergentItemFlags(t *testing.T) {
	items := []tms.LineItem{
		{Name: "PC Tower", PurchaseID: 5},
		{Name: "Monitor", PurchaseID: 5},
		{Name: "Keyboard", PurchaseID: 7},
	}
	summary, id := CheckPurchase(items)
	assert.Equal(t, PurchaseDiff, summary)
	assert.Equal(t, 5, id)
}

func TestCheckPurchaseSentinelItemIsExempt(t *testing.T) {
	items := []tms.LineItem{
		{Name: "PC Tower", PurchaseID: 5},
		{Name: "TMS - לאון", PurchaseID: 0},
	}
	summary, id := CheckPurchase(items)
	assert.Equal(t, PurchaseOK, summary)
	assert.Equal(t, 5, id)
}
