package tms

import (
	"strings"

	"golang.org/x/net/html"
)

// ParseOrderIDs walks the order listing document and collects the numeric
// text of every td.text-left cell, in document order. The listing renders
// the order id into the first left-aligned cell of each row; non-numeric
// cells (customer names, dates) share the class and are skipped.
func ParseOrderIDs(doc *html.Node) []string {
	var ids []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "td" && hasClass(n, "text-left") {
			if text := strings.TrimSpace(textContent(n)); isNumeric(text) {
				ids = append(ids, text)
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return ids
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		sb.WriteString(textContent(child))
	}
	return sb.String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
