package reconcile

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/P3CHR/TMS-Order-Sync/internal/vocab"
)

// purchaseNumberMarker precedes the numeric purchase number inside the
// page's second heading, e.g. "Purchase PT 1234".
const purchaseNumberMarker = "PT"

// NormalizePurchase extracts a PurchaseRecord from the purchase edit page.
// The page is fully controlled, so any structural mismatch (a missing
// control, a selector value outside its vocabulary, a heading without the
// number marker) makes the whole result unavailable instead of a partial
// record. The reason string is for the caller to log.
func NormalizePurchase(doc *html.Node) PurchaseResult {
	options := selectedOptions(doc)
	if len(options) < 3 {
		return unavailable(fmt.Sprintf("expected 3 selected options, found %d", len(options)))
	}

	status, err := vocab.PurchaseStatus(attrValue(options[0], "value"))
	if err != nil {
		return unavailable(err.Error())
	}
	orderType, err := vocab.PurchaseType(attrValue(options[1], "value"))
	if err != nil {
		return unavailable(err.Error())
	}
	shipment, err := vocab.ShipmentLocation(attrValue(options[2], "value"))
	if err != nil {
		return unavailable(err.Error())
	}

	number, err := purchaseNumber(doc)
	if err != nil {
		return unavailable(err.Error())
	}

	priority, ok := inputValueByID(doc, "input-priority-number")
	if !ok {
		return unavailable("priority input not found")
	}

	remark, ok := nicknameValue(doc)
	if !ok {
		return unavailable("nickname input not found")
	}

	return PurchaseResult{Record: &PurchaseRecord{
		PurchaseNumber:   number,
		Remark:           remark,
		Status:           status,
		OrderType:        orderType,
		Priority:         priority,
		ShipmentLocation: shipment,
		Active:           "INACTIVE",
	}}
}

// purchaseNumber reads the page's second h4 heading and returns the text
// after the number marker.
func purchaseNumber(doc *html.Node) (string, error) {
	headings := elementsByTag(doc, "h4")
	if len(headings) < 2 {
		return "", fmt.Errorf("expected 2 headings, found %d", len(headings))
	}
	text := nodeText(headings[1])
	_, after, found := strings.Cut(text, purchaseNumberMarker)
	if !found {
		return "", fmt.Errorf("heading %q carries no purchase number marker", strings.TrimSpace(text))
	}
	number := strings.TrimSpace(after)
	if number == "" {
		return "", fmt.Errorf("heading %q carries an empty purchase number", strings.TrimSpace(text))
	}
	return number, nil
}

// selectedOptions returns every option element with a selected attribute,
// in document order.
func selectedOptions(doc *html.Node) []*html.Node {
	var options []*html.Node
	walkElements(doc, func(n *html.Node) {
		if n.Data == "option" && hasAttr(n, "selected") {
			options = append(options, n)
		}
	})
	return options
}

func elementsByTag(doc *html.Node, tag string) []*html.Node {
	var nodes []*html.Node
	walkElements(doc, func(n *html.Node) {
		if n.Data == tag {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

func inputValueByID(doc *html.Node, id string) (string, bool) {
	var value string
	found := false
	walkElements(doc, func(n *html.Node) {
		if !found && n.Data == "input" && attrValue(n, "id") == id {
			value = attrValue(n, "value")
			found = true
		}
	})
	return value, found
}

// nicknameValue finds the remark field: the first form-control input named
// "nickname".
func nicknameValue(doc *html.Node) (string, bool) {
	var value string
	found := false
	walkElements(doc, func(n *html.Node) {
		if found || n.Data != "input" {
			return
		}
		if attrValue(n, "name") != "nickname" {
			return
		}
		for _, class := range strings.Fields(attrValue(n, "class")) {
			if class == "form-control" {
				value = attrValue(n, "value")
				found = true
				return
			}
		}
	})
	return value, found
}

func walkElements(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walkElements(child, visit)
	}
}

func hasAttr(n *html.Node, key string) bool {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(nodeText(child))
	}
	return sb.String()
}
