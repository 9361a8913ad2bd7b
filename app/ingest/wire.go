package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field names of the line-delimited JSON interchange format the loader
// consumes. Several keys carry spaces, so entries travel as plain maps
// rather than tagged structs.
const (
	wireUniversity         = "university"
	wireProgram            = "program"
	wireComments           = "comments"
	wireDateAdded          = "date added"
	wireURL                = "url"
	wireStatus             = "application status"
	wireTerm               = "term"
	wireOrigin             = "US/International"
	wireGPA                = "GPA"
	wireGRE                = "GRE"
	wireGREV               = "GRE V"
	wireGREAW              = "GRE AW"
	wireDegree             = "degree"
	wireEnrichedProgram    = "llm-generated-program"
	wireEnrichedUniversity = "llm-generated-university"
)

// EncodeWire flattens a clean record plus its enrichment fields into one
// wire entry. Absent optional fields become JSON null, which the loader's
// completeness check lets through.
func EncodeWire(record CleanRecord, enrichedProgram, enrichedUniversity string) map[string]any {
	return map[string]any{
		wireUniversity:         record.University,
		wireProgram:            record.Program,
		wireComments:           optionalValue(record.Comments),
		wireDateAdded:          record.DateAdded,
		wireURL:                record.URL,
		wireStatus:             record.Status,
		wireTerm:               record.Term,
		wireOrigin:             record.Origin,
		wireGPA:                optionalValue(record.GPA),
		wireGRE:                optionalValue(record.GREQuant),
		wireGREV:               optionalValue(record.GREVerbal),
		wireGREAW:              optionalValue(record.GREAW),
		wireDegree:             record.Degree,
		wireEnrichedProgram:    enrichedProgram,
		wireEnrichedUniversity: enrichedUniversity,
	}
}

func optionalValue(field *string) any {
	if field == nil {
		return nil
	}
	return *field
}

// MarshalWireLines renders entries as newline-delimited JSON, one object
// per line.
func MarshalWireLines(entries []map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)

	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			return nil, fmt.Errorf("failed to encode wire entry: %w", err)
		}
	}

	return buf.Bytes(), nil
}
