package ingest

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"gradboard/app/database"
)

// Raw dates arrive in the site's long form, e.g. "January 15, 2026".
const wireDateLayout = "January 2, 2006"

// Loader writes wire-format streams into the store. It is idempotent: a
// duplicate URL is silently skipped via the unique index, never updated.
type Loader struct {
	repo database.AdmissionRepository

	mu          sync.Mutex
	schemaReady bool
}

func NewLoader(repo database.AdmissionRepository) *Loader {
	return &Loader{repo: repo}
}

// ensureSchema lazily provisions the schema on first use. A failed attempt
// is retried on the next load rather than latched.
func (l *Loader) ensureSchema() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.schemaReady {
		return nil
	}
	if err := l.repo.EnsureSchema(); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	l.schemaReady = true
	return nil
}

// LoadStream reads newline-delimited JSON entries and inserts them inside
// a single transaction with one commit at the end. Blank lines are
// skipped, as is any entry carrying an empty-string value. Returns the
// number of newly inserted rows.
func (l *Loader) LoadStream(ctx context.Context, r io.Reader) (int, error) {
	if err := l.ensureSchema(); err != nil {
		return 0, err
	}

	tx, err := l.repo.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// entries can carry arbitrarily long comments, so lines are read
	// unbounded instead of through a capped scanner
	reader := bufio.NewReader(r)

	inserted := 0
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return 0, fmt.Errorf("failed to read wire stream: %w", readErr)
		}

		if err := ctx.Err(); err != nil {
			return 0, err
		}

		line = strings.TrimSpace(line)
		if line != "" {
			var entry map[string]any
			if err := json.Unmarshal([]byte(line), &entry); err != nil {
				return 0, fmt.Errorf("failed to decode wire entry: %w", err)
			}

			if hasEmptyValue(entry) {
				slog.Debug("Skipping incomplete wire entry", "url", entry[wireURL])
			} else {
				ok, err := l.repo.InsertIgnoreDuplicate(tx, decodeAdmission(entry))
				if err != nil {
					return 0, fmt.Errorf("failed to insert admission: %w", err)
				}
				if ok {
					inserted++
				}
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return inserted, nil
}

// hasEmptyValue reports whether any field of the entry is an empty string.
// Explicitly absent fields travel as JSON null and pass the check.
func hasEmptyValue(entry map[string]any) bool {
	for _, value := range entry {
		if s, ok := value.(string); ok && s == "" {
			return true
		}
	}
	return false
}

func decodeAdmission(entry map[string]any) database.Admission {
	url := wireText(entry, wireURL)

	resultPage, _ := ResultID(url)

	return database.Admission{
		University:             wireText(entry, wireUniversity),
		Program:                wireText(entry, wireProgram),
		Comments:               wireNullText(entry, wireComments),
		DateAdded:              wireDate(entry, wireDateAdded),
		URL:                    url,
		Status:                 wireText(entry, wireStatus),
		Term:                   wireText(entry, wireTerm),
		USOrInternational:      wireText(entry, wireOrigin),
		GPA:                    wireNullFloat(entry, wireGPA),
		GRE:                    wireNullFloat(entry, wireGRE),
		GREV:                   wireNullFloat(entry, wireGREV),
		GREAW:                  wireNullFloat(entry, wireGREAW),
		Degree:                 wireText(entry, wireDegree),
		LLMGeneratedProgram:    wireText(entry, wireEnrichedProgram),
		LLMGeneratedUniversity: wireText(entry, wireEnrichedUniversity),
		ResultPage:             resultPage,
	}
}

func wireText(entry map[string]any, key string) string {
	s, _ := entry[key].(string)
	return s
}

func wireNullText(entry map[string]any, key string) sql.NullString {
	s, ok := entry[key].(string)
	if !ok {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// wireDate normalizes the long-form date to ISO, defaulting to NULL on
// unparseable input.
func wireDate(entry map[string]any, key string) sql.NullString {
	raw, ok := entry[key].(string)
	if !ok {
		return sql.NullString{}
	}

	parsed, err := time.Parse(wireDateLayout, raw)
	if err != nil {
		slog.Debug("Skipping unparseable date", "value", raw)
		return sql.NullString{}
	}

	return sql.NullString{String: parsed.Format("2006-01-02"), Valid: true}
}

// wireNullFloat coerces a numeric field, tolerating both string and number
// encodings. Unparseable values degrade to NULL.
func wireNullFloat(entry map[string]any, key string) sql.NullFloat64 {
	switch value := entry[key].(type) {
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return sql.NullFloat64{}
		}
		return sql.NullFloat64{Float64: f, Valid: true}
	case float64:
		return sql.NullFloat64{Float64: value, Valid: true}
	default:
		return sql.NullFloat64{}
	}
}
