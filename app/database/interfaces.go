package database

import (
	"database/sql"
)

type AdmissionRepository interface {
	Begin() (*sql.Tx, error)
	EnsureSchema() error

	InsertIgnoreDuplicate(tx *sql.Tx, admission Admission) (bool, error)

	GetKnownURLs() (map[string]struct{}, error)
	GetMaxResultPage() (int64, bool, error)
	GetRecordCount() (int, error)
	GetStats() (*Stats, error)
}
