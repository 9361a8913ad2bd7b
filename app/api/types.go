package api

import (
	"gradboard/app/database"
	"gradboard/app/ingest"
)

type Handler struct {
	repo        database.AdmissionRepository
	coordinator *ingest.Coordinator
}

func NewHandler(repo database.AdmissionRepository, coordinator *ingest.Coordinator) *Handler {
	return &Handler{
		repo:        repo,
		coordinator: coordinator,
	}
}
