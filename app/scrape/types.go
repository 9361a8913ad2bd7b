package scrape

// RowGroup is the ordered cell text of one listing-page record. Consecutive
// table rows belonging to the same record are folded into a single group;
// when the group's first row carries an anchor, its href is inserted at
// element 0 as the detail-page reference.
type RowGroup []string

// DetailRef returns the relative detail-page link of a row-group, or an
// empty string when the group carried no anchor.
func (g RowGroup) DetailRef() string {
	if len(g) == 0 {
		return ""
	}
	return g[0]
}

// Record holds the raw scraped fields of a single admission result. Values
// are text exactly as scraped; a parse miss leaves the field empty rather
// than failing the whole record.
type Record struct {
	URL        string
	University string
	Program    string
	Degree     string
	Term       string
	DateAdded  string
	Status     string
	StatusDate string
	Comments   string
	Origin     string
	GPA        string
	GREQuant   string
	GREVerbal  string
	GREAW      string
}

// IsZero reports whether the record carries no identity. Fetchers return a
// zero record to signal a dropped page.
func (r Record) IsZero() bool {
	return r.URL == ""
}

// Listing cells consumed when seeding a record from a row-group: element 0
// is the detail link, element 3 the date-added cell, element 6 the raw term
// block. The remaining cells are only needed on the detail page.
const (
	cellDateAdded = 3
	cellTerm      = 6
)

// SeedFromRowGroup builds the initial record for a row-group. Groups too
// short to carry the seeded cells yield a zero record and are skipped.
func SeedFromRowGroup(group RowGroup, source Source) Record {
	if len(group) <= cellTerm || group.DetailRef() == "" {
		return Record{}
	}

	return Record{
		URL:       source.AbsoluteURL(group.DetailRef()),
		DateAdded: group[cellDateAdded],
		Term:      group[cellTerm],
	}
}
