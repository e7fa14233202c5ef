package reconcile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const purchasePageHTML = `<html><body>
<h4>Supplier details</h4>
<h4>Purchase PT 1234</h4>
<form>
  <select name="status">
    <option value="1">DO NOT</option>
    <option value="2" selected>CLOSED (CONFIRMED)</option>
  </select>
  <select name="order_type">
    <option value="2" selected>Computer</option>
  </select>
  <select name="shipment">
    <option value="Ntrn" selected>Netanya</option>
  </select>
  <input id="input-priority-number" type="number" value="3"/>
  <input class="form-control" name="nickname" value="rush job"/>
</form>
</body></html>`

func parsePage(t *testing.T, raw string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(raw))
	require.NoError(t, err)
	return doc
}

func TestNormalizePurchase(t *testing.T) {
	result := NormalizePurchase(parsePage(t, purchasePageHTML))
	require.True(t, result.Available(), "reason: %s", result.Reason)

	record := result.Record
	assert.Equal(t, "1234", record.PurchaseNumber)
	assert.Equal(t, "rush job", record.Remark)
	assert.Equal(t, "CLOSED (CONFIRMED)", record.Status)
	assert.Equal(t, "Computer", record.OrderType)
	assert.Equal(t, "3", record.Priority)
	assert.Equal(t, "Netanya", record.ShipmentLocation)
	assert.Equal(t, "INACTIVE", record.Active)
}

func TestNormalizePurchaseMissingSelectors(t *testing.T) {
	page := strings.Replace(purchasePageHTML, ` selected>Netanya`, `>Netanya`, 1)
	result := NormalizePurchase(parsePage(t, page))
	assert.False(t, result.Available())
	assert.Contains(t, result.Reason, "selected options")
}

func TestNormalizePurchaseUnknownSelectorValue(t *testing.T) {
	page := strings.Replace(purchasePageHTML, `value="2" selected`, `value="9" selected`, 1)
	result := NormalizePurchase(parsePage(t, page))
	assert.False(t, result.Available())
	assert.Contains(t, result.Reason, "unknown purchase status")
}

func TestNormalizePurchaseMissingNumberMarker(t *testing.T) {
	page := strings.Replace(purchasePageHTML, "Purchase PT 1234", "Purchase 1234", 1)
	result := NormalizePurchase(parsePage(t, page))
	assert.False(t, result.Available())
	assert.Contains(t, result.Reason, "purchase number marker")
}

func TestNormalizePurchaseMissingPriorityInput(t *testing.T) {
	page := strings.Replace(purchasePageHTML, `id="input-priority-number"`, `id="other"`, 1)
	result := NormalizePurchase(parsePage(t, page))
	assert.False(t, result.Available())
	assert.Contains(t, result.Reason, "priority input")
}

func TestNormalizePurchaseMissingNickname(t *testing.T) {
	page := strings.Replace(purchasePageHTML, `name="nickname"`, `name="alias"`, 1)
	result := NormalizePurchase(parsePage(t, page))
	assert.False(t, result.Available())
	assert.Contains(t, result.Reason, "nickname input")
}
