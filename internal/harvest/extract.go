package harvest

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Candidate is an unvalidated structural match pulled from a source
// document, prior to date parsing and month filtering.
type Candidate struct {
	Title     string
	DateToken string
	URL       string
}

// Strategy produces zero or more candidate rows from a parsed document.
// Strategies are independent; the chain below picks the first that yields
// anything.
type Strategy interface {
	Name() string
	Extract(doc *goquery.Document, base *url.URL) []Candidate
}

// Chain applies an ordered list of extraction strategies and returns the
// output of the first one with a non-empty candidate set. Source layouts are
// not stable across sites or over time, hence the fallback design.
type Chain struct {
	strategies []Strategy
}

// NewChain builds a Chain. With no arguments the default strategy order is
// used: table rows, then list items, then generic containers.
func NewChain(strategies ...Strategy) *Chain {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	return &Chain{strategies: strategies}
}

// DefaultStrategies returns the standard fallback order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		tableRowStrategy{},
		listItemStrategy{},
		genericContainerStrategy{},
	}
}

// Extract parses raw document text and runs the strategy chain. Relative
// hyperlinks are resolved against baseURL. An empty result is not an error;
// it means the document holds nothing recognizable.
func (c *Chain) Extract(htmlText, baseURL string) ([]Candidate, string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, "", fmt.Errorf("parse base url: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, "", fmt.Errorf("parse document: %w", err)
	}
	for _, s := range c.strategies {
		if candidates := s.Extract(doc, base); len(candidates) > 0 {
			return candidates, s.Name(), nil
		}
	}
	return nil, "", nil
}

// tableRowStrategy matches the Sr.No / Date / Title table layout: rows with
// at least three cells, date in the second, linked title in the third.
// Header rows use <th> and fall out naturally.
type tableRowStrategy struct{}

func (tableRowStrategy) Name() string { return "table-rows" }

func (tableRowStrategy) Extract(doc *goquery.Document, base *url.URL) []Candidate {
	var out []Candidate
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		titleCell := cells.Eq(2)
		href, ok := firstLink(titleCell, base)
		if !ok {
			return
		}
		title := CleanText(titleCell.Text())
		if title == "" {
			return
		}
		token := CleanText(cells.Eq(1).Text())
		if token == "" {
			token = CleanText(row.Text())
		}
		out = append(out, Candidate{Title: title, DateToken: token, URL: href})
	})
	return out
}

// listItemStrategy matches bulleted announcement lists: any <li> holding a
// hyperlink, with the date token taken from the item's own text.
type listItemStrategy struct{}

func (listItemStrategy) Name() string { return "list-items" }

func (listItemStrategy) Extract(doc *goquery.Document, base *url.URL) []Candidate {
	var out []Candidate
	doc.Find("li").Each(func(_ int, item *goquery.Selection) {
		link := item.Find("a[href]").First()
		href, ok := firstLink(item, base)
		if !ok {
			return
		}
		title := CleanText(link.Text())
		if title == "" {
			title = CleanText(item.Text())
		}
		if title == "" {
			return
		}
		out = append(out, Candidate{Title: title, DateToken: CleanText(item.Text()), URL: href})
	})
	return out
}

// genericContainerStrategy is the last resort: any container whose text
// carries a date token and which holds a hyperlink. Table rows are included
// so layouts too sparse for the table strategy (two-cell rows) still yield
// their announcement. Nested containers can repeat the same announcement;
// downstream dedupe collapses those.
type genericContainerStrategy struct{}

func (genericContainerStrategy) Name() string { return "generic-containers" }

func (genericContainerStrategy) Extract(doc *goquery.Document, base *url.URL) []Candidate {
	var out []Candidate
	doc.Find("div, article, section, tr").Each(func(_ int, container *goquery.Selection) {
		text := CleanText(container.Text())
		if !HasDateToken(text) {
			return
		}
		link := container.Find("a[href]").First()
		href, ok := firstLink(container, base)
		if !ok {
			return
		}
		title := CleanText(link.Text())
		if title == "" {
			return
		}
		out = append(out, Candidate{Title: title, DateToken: text, URL: href})
	})
	return out
}

// firstLink resolves the first usable hyperlink inside the selection against
// the base URL. Rows without one are discarded by every strategy.
func firstLink(sel *goquery.Selection, base *url.URL) (string, bool) {
	href, ok := sel.Find("a[href]").First().Attr("href")
	if !ok {
		return "", false
	}
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
