package harvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableFixture = `
<html><body>
<table>
  <tr><th>Sr. No.</th><th>Date</th><th>Title</th></tr>
  <tr><td>1</td><td>14.10.2025</td><td><a href="/docs/order-1.pdf">Grid connectivity order</a></td></tr>
  <tr><td>2</td><td>08.10.2025</td><td><a href="https://ctuil.in/docs/order-2.pdf">Tariff petition notice</a></td></tr>
  <tr><td>3</td><td>01.10.2025</td><td>No hyperlink in this row</td></tr>
</table>
</body></html>`

const listFixture = `
<html><body>
<ul>
  <li>05.10.2025 <a href="/updates/one.html">First bulletin</a></li>
  <li>06.10.2025 <a href="/updates/two.html">Second bulletin</a></li>
  <li>Plain item without a link</li>
</ul>
</body></html>`

const containerFixture = `
<html><body>
<div class="card">08.10.2025 <a href="/n/1">Container announcement</a></div>
<div class="card">No date, no deal <a href="/n/2">Ignored</a></div>
</body></html>`

func TestChainTableRows(t *testing.T) {
	t.Parallel()

	candidates, strategy, err := NewChain().Extract(tableFixture, "https://ctuil.in/latestnews")
	require.NoError(t, err)
	assert.Equal(t, "table-rows", strategy)
	require.Len(t, candidates, 2, "the linkless row must be discarded")

	assert.Equal(t, "Grid connectivity order", candidates[0].Title)
	assert.Equal(t, "14.10.2025", candidates[0].DateToken)
	assert.Equal(t, "https://ctuil.in/docs/order-1.pdf", candidates[0].URL, "relative href resolved")
	assert.Equal(t, "https://ctuil.in/docs/order-2.pdf", candidates[1].URL, "absolute href untouched")
}

func TestChainFallsBackToListItems(t *testing.T) {
	t.Parallel()

	candidates, strategy, err := NewChain().Extract(listFixture, "https://cercind.gov.in/viewall.html")
	require.NoError(t, err)
	assert.Equal(t, "list-items", strategy)
	require.Len(t, candidates, 2)

	assert.Equal(t, "First bulletin", candidates[0].Title)
	assert.Contains(t, candidates[0].DateToken, "05.10.2025")
	assert.Equal(t, "https://cercind.gov.in/updates/one.html", candidates[0].URL)
}

func TestChainFallsBackToGenericContainers(t *testing.T) {
	t.Parallel()

	candidates, strategy, err := NewChain().Extract(containerFixture, "https://example.org/")
	require.NoError(t, err)
	assert.Equal(t, "generic-containers", strategy)
	require.Len(t, candidates, 1, "containers without a date token are skipped")
	assert.Equal(t, "Container announcement", candidates[0].Title)
	assert.Equal(t, "https://example.org/n/1", candidates[0].URL)
}

func TestChainTwoCellTableRows(t *testing.T) {
	t.Parallel()

	// Date cell and linked-title cell only: too sparse for the table
	// strategy, no list items, so the generic-container fallback must
	// pick the rows up.
	const fixture = `
<html><body>
<table>
  <tr><td>08.10.2025</td><td><a href="/docs/order.pdf">Tariff order</a></td></tr>
  <tr><td>09.10.2025</td><td><a href="/docs/rop.pdf">Record of proceedings</a></td></tr>
</table>
</body></html>`

	candidates, strategy, err := NewChain().Extract(fixture, "https://cercind.gov.in/")
	require.NoError(t, err)
	assert.Equal(t, "generic-containers", strategy)
	require.Len(t, candidates, 2)

	assert.Equal(t, "Tariff order", candidates[0].Title)
	assert.Contains(t, candidates[0].DateToken, "08.10.2025")
	assert.Equal(t, "https://cercind.gov.in/docs/order.pdf", candidates[0].URL)
	assert.Equal(t, "Record of proceedings", candidates[1].Title)
}

func TestChainEmptyDocument(t *testing.T) {
	t.Parallel()

	candidates, strategy, err := NewChain().Extract("<html><body><p>nothing</p></body></html>", "https://example.org/")
	require.NoError(t, err)
	assert.Empty(t, candidates)
	assert.Empty(t, strategy)
}

func TestChainDiscardsUnusableLinks(t *testing.T) {
	t.Parallel()

	const fixture = `
<table>
  <tr><td>1</td><td>14.10.2025</td><td><a href="#">Fragment only</a></td></tr>
  <tr><td>2</td><td>14.10.2025</td><td><a href="javascript:void(0)">Script link</a></td></tr>
</table>`

	candidates, _, err := NewChain().Extract(fixture, "https://example.org/")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
