package database

import (
	"database/sql"
	"testing"
)

func newTestRepository(t *testing.T) *SQLAdmissionRepository {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	repo := NewAdmissionRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}

	return repo
}

func testAdmission(url string, resultPage int64) Admission {
	return Admission{
		University:             "Georgia Tech",
		Program:                "Computer Science",
		Comments:               sql.NullString{String: "Accepted off the waitlist", Valid: true},
		DateAdded:              sql.NullString{String: "2026-01-15", Valid: true},
		URL:                    url,
		Status:                 "Accepted",
		Term:                   "Fall 2026",
		USOrInternational:      "International",
		GPA:                    sql.NullFloat64{Float64: 3.8, Valid: true},
		GRE:                    sql.NullFloat64{Float64: 324, Valid: true},
		GREV:                   sql.NullFloat64{Float64: 162, Valid: true},
		GREAW:                  sql.NullFloat64{Float64: 4.5, Valid: true},
		Degree:                 "PhD",
		LLMGeneratedProgram:    "Computer Science",
		LLMGeneratedUniversity: "Georgia Institute of Technology",
		ResultPage:             resultPage,
	}
}

func insertOne(t *testing.T, repo *SQLAdmissionRepository, admission Admission) bool {
	t.Helper()

	tx, err := repo.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	inserted, err := repo.InsertIgnoreDuplicate(tx, admission)
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert admission: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	return inserted
}

func TestInsertIgnoreDuplicateIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	admission := testAdmission("https://www.thegradcafe.com/result/101", 101)

	if inserted := insertOne(t, repo, admission); !inserted {
		t.Error("Expected first insert to report a new row")
	}
	if inserted := insertOne(t, repo, admission); inserted {
		t.Error("Expected duplicate insert to be a no-op")
	}

	count, err := repo.GetRecordCount()
	if err != nil {
		t.Fatalf("Failed to get record count: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected exactly 1 stored row, got: %d", count)
	}
}

func TestGetKnownURLs(t *testing.T) {
	repo := newTestRepository(t)

	insertOne(t, repo, testAdmission("https://www.thegradcafe.com/result/101", 101))
	insertOne(t, repo, testAdmission("https://www.thegradcafe.com/result/102", 102))

	urls, err := repo.GetKnownURLs()
	if err != nil {
		t.Fatalf("Failed to get known URLs: %v", err)
	}

	if len(urls) != 2 {
		t.Fatalf("Expected 2 known URLs, got: %d", len(urls))
	}
	if _, ok := urls["https://www.thegradcafe.com/result/101"]; !ok {
		t.Error("Expected result 101 in known URL set")
	}
}

func TestGetMaxResultPage(t *testing.T) {
	repo := newTestRepository(t)

	if _, ok, err := repo.GetMaxResultPage(); err != nil {
		t.Fatalf("Failed to get max result page: %v", err)
	} else if ok {
		t.Error("Expected no watermark on empty table")
	}

	insertOne(t, repo, testAdmission("https://www.thegradcafe.com/result/101", 101))
	insertOne(t, repo, testAdmission("https://www.thegradcafe.com/result/205", 205))

	max, ok, err := repo.GetMaxResultPage()
	if err != nil {
		t.Fatalf("Failed to get max result page: %v", err)
	}
	if !ok {
		t.Fatal("Expected a watermark after inserts")
	}
	if max != 205 {
		t.Errorf("Expected watermark 205, got: %d", max)
	}
}

func TestGetStats(t *testing.T) {
	repo := newTestRepository(t)

	insertOne(t, repo, testAdmission("https://www.thegradcafe.com/result/101", 101))

	stats, err := repo.GetStats()
	if err != nil {
		t.Fatalf("Failed to get stats: %v", err)
	}
	if stats.TotalRecords != 1 {
		t.Errorf("Expected 1 total record, got: %d", stats.TotalRecords)
	}
	if stats.MaxResultPage != 101 {
		t.Errorf("Expected max result page 101, got: %d", stats.MaxResultPage)
	}
	if stats.LatestDateAdded != "2026-01-15" {
		t.Errorf("Expected latest date '2026-01-15', got: %s", stats.LatestDateAdded)
	}
}

func TestRollbackLeavesNoRows(t *testing.T) {
	repo := newTestRepository(t)

	tx, err := repo.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	if _, err := repo.InsertIgnoreDuplicate(tx, testAdmission("https://www.thegradcafe.com/result/301", 301)); err != nil {
		t.Fatalf("Failed to insert admission: %v", err)
	}

	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to roll back transaction: %v", err)
	}

	count, err := repo.GetRecordCount()
	if err != nil {
		t.Fatalf("Failed to get record count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no rows after rollback, got: %d", count)
	}
}
