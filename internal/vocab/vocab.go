// Package vocab holds the closed code-to-label mappings used by the TMS
// backend. The order-side tables tolerate unknown codes because the backend
// adds statuses without notice; the purchase-side tables do not, since the
// purchase edit page only ever emits known selector values.
package vocab

import "fmt"

var orderStatuses = map[int]string{
	0:  "CHECK?",
	1:  "New Order",
	3:  "Approved for operation",
	5:  "On Hold",
	7:  "Canceled",
	17: "Completed",
	19: "Shipped",
	20: "Waiting for pickup",
}

var orderTypes = map[int]string{
	0: "NOT SET",
	1: "Computer",
	2: "Components",
}

var purchaseStatuses = map[string]string{
	"1": "DO NOT",
	"2": "CLOSED (CONFIRMED)",
	"3": "CLOSED (BY STOCK)",
}

var purchaseTypes = map[string]string{
	"0": "NOT SELECTED",
	"1": "Components",
	"2": "Computer",
	"3": "OUT",
}

var shipmentLocations = map[string]string{
	"0":    "NOT SELECTED",
	"Ntrn": "Netanya",
	"Htrn": "Holon",
	"Eman": "EILAT",
	"Ndel": "DELIVERY",
	"Ttrn": "Tel Aviv",
	"Ftrn": "Haifa",
	"Btrn": "Beer Sheva",
	"Atrn": "Ashdod",
}

// OrderStatus returns the label for an order status code, or "Unknown" for
// codes the backend added after this table was written.
func OrderStatus(code int) string {
	if label, ok := orderStatuses[code]; ok {
		return label
	}
	return "Unknown"
}

// OrderType returns the label for an order type code, or "Unknown".
func OrderType(code int) string {
	if label, ok := orderTypes[code]; ok {
		return label
	}
	return "Unknown"
}

// PurchaseStatus decodes a purchase status selector value.
func PurchaseStatus(value string) (string, error) {
	if label, ok := purchaseStatuses[value]; ok {
		return label, nil
	}
	return "", fmt.Errorf("unknown purchase status value %q", value)
}

// PurchaseType decodes a purchase order-type selector value.
func PurchaseType(value string) (string, error) {
	if label, ok := purchaseTypes[value]; ok {
		return label, nil
	}
	return "", fmt.Errorf("unknown purchase type value %q", value)
}

// ShipmentLocation decodes a shipment location selector value.
func ShipmentLocation(value string) (string, error) {
	if label, ok := shipmentLocations[value]; ok {
		return label, nil
	}
	return "", fmt.Errorf("unknown shipment location value %q", value)
}
