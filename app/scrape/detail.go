package scrape

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// detailFields maps the position of a labeled <dl> entry on the detail page
// to the record field it fills. Index 7 is absent on purpose: the GRE entry
// has a nested structure and is parsed by a dedicated rule.
var detailFields = map[int]func(*Record, string){
	0: func(r *Record, v string) { r.University = v },
	1: func(r *Record, v string) { r.Program = v },
	2: func(r *Record, v string) { r.Degree = v },
	3: func(r *Record, v string) { r.Origin = v },
	4: func(r *Record, v string) { r.Status = v },
	5: func(r *Record, v string) { r.StatusDate = v },
	6: func(r *Record, v string) { r.GPA = v },
	8: func(r *Record, v string) { r.Comments = v },
}

// greEntryIndex is the entry holding three <li> items with the GRE quant,
// verbal, and analytical-writing scores.
const greEntryIndex = 7

// DetailFetcher retrieves result detail pages and fills the remaining fields
// of a seeded record.
type DetailFetcher struct {
	source     Source
	httpClient *http.Client
	userAgent  string
}

func NewDetailFetcher(source Source, httpClient *http.Client, userAgent string) *DetailFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultFetchTimeout}
	}

	return &DetailFetcher{
		source:     source,
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// FetchDetail retrieves the record's detail page and maps its labeled
// entries onto the seeded record by position. A missing value node leaves
// the field unset. Fetch or markup failures return a zero record so the
// runner drops the page without affecting the rest of the batch.
func (f *DetailFetcher) FetchDetail(ctx context.Context, seed Record) Record {
	if f.source.IsRestricted(seed.URL) {
		return Record{}
	}

	doc, err := fetchDocument(ctx, f.httpClient, seed.URL, f.userAgent)
	if err != nil {
		slog.Warn("Detail page fetch failed", "url", seed.URL, "error", err)
		return Record{}
	}

	entries := doc.Find("dl").First().Find("div")
	if entries.Length() == 0 {
		slog.Warn("Detail page has no parseable entries", "url", seed.URL)
		return Record{}
	}

	record := seed

	entries.Each(func(i int, entry *goquery.Selection) {
		if i == greEntryIndex {
			fillGREScores(&record, entry)
			return
		}

		set, ok := detailFields[i]
		if !ok {
			return
		}

		value := entry.Find("dd").First()
		if value.Length() == 0 {
			return
		}

		set(&record, value.Text())
	})

	return record
}

// fillGREScores parses the three nested score items; the second <span> of
// each item holds the value. Fewer than three items leaves the scores unset.
func fillGREScores(record *Record, entry *goquery.Selection) {
	scores := entry.Find("li").Map(func(_ int, item *goquery.Selection) string {
		return item.Find("span").Eq(1).Text()
	})

	if len(scores) < 3 {
		return
	}

	record.GREQuant = scores[0]
	record.GREVerbal = scores[1]
	record.GREAW = scores[2]
}
