package database

import (
	"database/sql"
	"fmt"
)

var _ AdmissionRepository = (*SQLAdmissionRepository)(nil)

// SQLAdmissionRepository handles database operations for admission records
type SQLAdmissionRepository struct {
	db *DB
}

// NewAdmissionRepository creates a new admission repository
func NewAdmissionRepository(db *DB) *SQLAdmissionRepository {
	return &SQLAdmissionRepository{db: db}
}

// Begin opens the transaction that scopes one load batch.
func (r *SQLAdmissionRepository) Begin() (*sql.Tx, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// EnsureSchema applies pending migrations. Safe to call repeatedly; used by
// the loader to lazily provision the schema on first use.
func (r *SQLAdmissionRepository) EnsureSchema() error {
	if _, _, err := RunMigrations(r.db); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// InsertIgnoreDuplicate inserts an admission record keyed on url with
// do-nothing conflict semantics. Returns true when a row was actually
// inserted, false when the url was already stored.
func (r *SQLAdmissionRepository) InsertIgnoreDuplicate(tx *sql.Tx, admission Admission) (bool, error) {
	result, err := tx.Exec(`
		INSERT INTO admissions (
			university, program, comments, date_added, url,
			status, term, us_or_international, gpa, gre, gre_v,
			gre_aw, degree, llm_generated_program,
			llm_generated_university, result_page
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (url) DO NOTHING
	`, admission.University, admission.Program, admission.Comments, admission.DateAdded,
		admission.URL, admission.Status, admission.Term, admission.USOrInternational,
		admission.GPA, admission.GRE, admission.GREV, admission.GREAW, admission.Degree,
		admission.LLMGeneratedProgram, admission.LLMGeneratedUniversity, admission.ResultPage)

	if err != nil {
		return false, fmt.Errorf("failed to insert admission: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}

// GetKnownURLs returns the set of all stored record URLs.
func (r *SQLAdmissionRepository) GetKnownURLs() (map[string]struct{}, error) {
	rows, err := r.db.Query("SELECT url FROM admissions")
	if err != nil {
		return nil, fmt.Errorf("failed to get known URLs: %w", err)
	}
	defer rows.Close()

	urls := make(map[string]struct{})
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan url row: %w", err)
		}
		urls[url] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating url rows: %w", err)
	}

	return urls, nil
}

// GetMaxResultPage returns the incremental watermark: the highest stored
// result_page. The second return value is false when the table is empty.
func (r *SQLAdmissionRepository) GetMaxResultPage() (int64, bool, error) {
	var max sql.NullInt64
	err := r.db.QueryRow("SELECT MAX(result_page) FROM admissions").Scan(&max)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get max result page: %w", err)
	}

	if !max.Valid {
		return 0, false, nil
	}

	return max.Int64, true, nil
}

// GetRecordCount returns the total number of stored admission records.
func (r *SQLAdmissionRepository) GetRecordCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM admissions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get record count: %w", err)
	}
	return count, nil
}

// GetStats returns statistics about the stored records
func (r *SQLAdmissionRepository) GetStats() (*Stats, error) {
	var stats Stats
	var max sql.NullInt64
	var latest sql.NullString

	err := r.db.QueryRow(`
		SELECT COUNT(*), MAX(result_page), MAX(date_added)
		FROM admissions
	`).Scan(&stats.TotalRecords, &max, &latest)

	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if max.Valid {
		stats.MaxResultPage = max.Int64
	}
	if latest.Valid {
		stats.LatestDateAdded = latest.String
	}

	return &stats, nil
}
