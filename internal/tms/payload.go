package tms

import (
	"bytes"
	"fmt"
	"strconv"
)

// Amount is a monetary value the backend emits either as a JSON number or as
// a quoted decimal string, depending on which PHP handler produced it.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = Amount(f)
	return nil
}

// Charge is one entry of an order's charge history.
type Charge struct {
	Success    bool   `json:"success"`
	Total      Amount `json:"total"`
	PriorityID int    `json:"priority_id"`
	Type       string `json:"type"`
}

// LineItem is one product line on an order. PurchaseID carries the linked
// purchase batch number; zero means the line is not linked to any purchase.
type LineItem struct {
	Name       string `json:"name"`
	PurchaseID int    `json:"number_order_claris"`
}

// ProcessLogEntry is one audit trail entry recorded against an order.
type ProcessLogEntry struct {
	User string `json:"user"`
}

type totalLine struct {
	Value *Amount `json:"value"`
}

type orderTotals struct {
	Total *totalLine `json:"total"`
}

// OrderPayload is the raw order structure returned by the order detail
// endpoint. Required fields are pointers so that absence can be told apart
// from zero values; Validate rejects payloads before any field is used.
type OrderPayload struct {
	DateAdded     *string           `json:"date_added"`
	OrderStatusID *int              `json:"order_status_id"`
	OrderTypeID   *int              `json:"order_type_id"`
	Firstname     *string           `json:"firstname"`
	Lastname      *string           `json:"lastname"`
	Telephone     *string           `json:"telephone"`
	PriorityID    *int              `json:"priority_id"`
	Totals        *orderTotals      `json:"totals"`
	ChargeHistory []Charge          `json:"charge_history"`
	OrderProducts []LineItem        `json:"order_products"`
	ProcessLog    []ProcessLogEntry `json:"process_log"`
}

type orderEnvelope struct {
	Data struct {
		Order *OrderPayload `json:"order"`
	} `json:"data"`
}

// Validate checks that every field the normalizer depends on is present.
// The order endpoint is a trusted contract, so a miss here is a schema
// violation, not something to paper over with defaults.
func (p *OrderPayload) Validate() error {
	switch {
	case p.DateAdded == nil:
		return fmt.Errorf("order payload missing date_added")
	case p.OrderStatusID == nil:
		return fmt.Errorf("order payload missing order_status_id")
	case p.OrderTypeID == nil:
		return fmt.Errorf("order payload missing order_type_id")
	case p.Firstname == nil:
		return fmt.Errorf("order payload missing firstname")
	case p.Lastname == nil:
		return fmt.Errorf("order payload missing lastname")
	case p.Telephone == nil:
		return fmt.Errorf("order payload missing telephone")
	case p.PriorityID == nil:
		return fmt.Errorf("order payload missing priority_id")
	case p.Totals == nil || p.Totals.Total == nil || p.Totals.Total.Value == nil:
		return fmt.Errorf("order payload missing totals.total.value")
	case p.ChargeHistory == nil:
		return fmt.Errorf("order payload missing charge_history")
	case p.OrderProducts == nil:
		return fmt.Errorf("order payload missing order_products")
	case p.ProcessLog == nil:
		return fmt.Errorf("order payload missing process_log")
	}
	return nil
}

// Total returns the order's total amount. Only valid after Validate.
func (p *OrderPayload) Total() float64 {
	return float64(*p.Totals.Total.Value)
}

// SetTotal fills the totals envelope; used when building payloads by hand.
func (p *OrderPayload) SetTotal(total float64) {
	value := Amount(total)
	p.Totals = &orderTotals{Total: &totalLine{Value: &value}}
}
