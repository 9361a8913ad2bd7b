package database

import (
	"database/sql"
)

// Admission is the persisted form of one cleaned and enriched record. The
// url column is the sole deduplication key; result_page holds the numeric
// tail of the URL and feeds the incremental watermark.
type Admission struct {
	ID                     int64
	University             string
	Program                string
	Comments               sql.NullString
	DateAdded              sql.NullString // ISO date (YYYY-MM-DD), NULL when unparseable
	URL                    string
	Status                 string
	Term                   string
	USOrInternational      string
	GPA                    sql.NullFloat64
	GRE                    sql.NullFloat64
	GREV                   sql.NullFloat64
	GREAW                  sql.NullFloat64
	Degree                 string
	LLMGeneratedProgram    string
	LLMGeneratedUniversity string
	ResultPage             int64
}

// Stats summarizes the stored data for the monitoring endpoints.
type Stats struct {
	TotalRecords    int
	MaxResultPage   int64
	LatestDateAdded string
}
