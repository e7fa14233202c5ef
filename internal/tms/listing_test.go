package tms

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const listingHTML = `<html><body><table>
<tr>
  <td class="text-left"> 1042 </td>
  <td class="text-left">Dana Mizrahi</td>
  <td class="text-right">200.00</td>
</tr>
<tr>
  <td class="text-left">1043</td>
  <td class="text-left">04/01/2026</td>
</tr>
<tr>
  <td class="text-left">1044</td>
</tr>
</table></body></html>`

func TestParseOrderIDs(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(listingHTML))
	require.NoError(t, err)

	ids := ParseOrderIDs(doc)
	assert.Equal(t, []string{"1042", "1043", "1044"}, ids)
}

func TestParseOrderIDsEmptyListing(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<html><body><p>No results</p></body></html>"))
	require.NoError(t, err)

	assert.Empty(t, ParseOrderIDs(doc))
}
