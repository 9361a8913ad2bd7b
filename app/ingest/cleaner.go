package ingest

import (
	"regexp"
	"strings"

	"gradboard/app/scrape"
)

// CleanRecord is the normalized form of a scraped record. Optional fields
// are nil when the upstream page reported the field's "not provided"
// sentinel instead of a real value.
type CleanRecord struct {
	URL        string
	University string
	Program    string
	Degree     string
	Term       string
	DateAdded  string
	Status     string
	StatusDate string
	Origin     string
	Comments   *string
	GPA        *string
	GREQuant   *string
	GREVerbal  *string
	GREAW      *string
}

// Sentinel literals the site renders when an applicant left a field blank.
const (
	sentinelGPA   = "0.00"
	sentinelGRE   = "0"
	sentinelGREAW = "0.00"
)

var statusDateJunk = regexp.MustCompile(`[^0-9/]`)

var controlStripper = strings.NewReplacer("\n", "", "\t", "")

// Clean normalizes one raw scraped record. The term is extracted from the
// raw multi-line block before control characters are stripped; everything
// else is flattened to single-line text. Returns a ValidationError when the
// term block carries no season line.
func Clean(raw scrape.Record) (CleanRecord, error) {
	term, err := extractTerm(raw.Term)
	if err != nil {
		return CleanRecord{}, err
	}

	return CleanRecord{
		URL:        strip(raw.URL),
		University: strip(raw.University),
		Program:    strip(raw.Program),
		Degree:     strip(raw.Degree),
		Term:       term,
		DateAdded:  strip(raw.DateAdded),
		Status:     strip(raw.Status),
		StatusDate: statusDateJunk.ReplaceAllString(raw.StatusDate, ""),
		Origin:     strip(raw.Origin),
		Comments:   optional(strip(raw.Comments), ""),
		GPA:        optional(strip(raw.GPA), sentinelGPA),
		GREQuant:   optional(strip(raw.GREQuant), sentinelGRE),
		GREVerbal:  optional(strip(raw.GREVerbal), sentinelGRE),
		GREAW:      optional(strip(raw.GREAW), sentinelGREAW),
	}, nil
}

func strip(s string) string {
	return strings.TrimSpace(controlStripper.Replace(s))
}

// extractTerm picks the first non-empty line of the raw term block that
// mentions a fall or spring season.
func extractTerm(block string) (string, error) {
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "\t", ""))
		if line == "" {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(lower, "fall") || strings.Contains(lower, "spring") {
			return line, nil
		}
	}

	return "", &ValidationError{Field: "term", Reason: "no season line found"}
}

// optional maps the field's sentinel literal to an explicit nil.
func optional(value, sentinel string) *string {
	if value == sentinel {
		return nil
	}
	return &value
}
