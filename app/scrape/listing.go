package scrape

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// ListingFetcher retrieves paginated listing pages and parses their result
// table into per-record row-groups.
type ListingFetcher struct {
	source     Source
	httpClient *http.Client
	userAgent  string
}

func NewListingFetcher(source Source, httpClient *http.Client, userAgent string) *ListingFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultFetchTimeout}
	}

	return &ListingFetcher{
		source:     source,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// FetchPage retrieves one listing page and groups its table rows. A row with
// no attributes on its <tr> tag starts a new record; attributed rows are
// continuations whose cell text is appended to the current group. The anchor
// href of a group's first row becomes element 0 (the detail reference).
// Network and markup failures yield an empty result, never an error: one bad
// page must not abort the batch.
func (f *ListingFetcher) FetchPage(ctx context.Context, page int) []RowGroup {
	url := f.source.ListingURL(page)
	if f.source.IsRestricted(url) {
		return nil
	}

	doc, err := fetchDocument(ctx, f.httpClient, url, f.userAgent)
	if err != nil {
		slog.Warn("Listing page fetch failed", "page", page, "error", err)
		return nil
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		slog.Warn("Listing page has no result table", "page", page)
		return nil
	}

	var groups []RowGroup
	var current RowGroup

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// header row
			return
		}

		startsGroup := len(row.Nodes[0].Attr) == 0
		if startsGroup {
			if len(current) > 0 {
				groups = append(groups, current)
			}
			current = nil

			// only the group's first row carries the detail link
			if href, ok := row.Find("a").First().Attr("href"); ok {
				current = RowGroup{href}
			}
		}

		cells := row.Find("td").Map(func(_ int, cell *goquery.Selection) string {
			return cell.Text()
		})

		current = append(current, cells...)
	})

	if len(current) > 0 {
		groups = append(groups, current)
	}

	return groups
}
