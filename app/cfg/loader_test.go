package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		DBPath:            "./test.db",
		Port:              "8080",
		SourceFile:        "./source.yml",
		DataDir:           "./data",
		WorkerCount:       10,
		ListingPages:      2000,
		FetchTimeout:      10,
		SchedulerInterval: 300,
		EnrichURL:         "http://localhost:5000/normalize",
		UserAgent:         "Test Agent",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.DBPath != "./test.db" {
		t.Errorf("Expected DB path './test.db', got '%s'", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.SourceFile != "./source.yml" {
		t.Errorf("Expected source file './source.yml', got '%s'", cfg.SourceFile)
	}
	if cfg.WorkerCount != 10 {
		t.Errorf("Expected worker count 10, got %d", cfg.WorkerCount)
	}
	if cfg.ListingPages != 2000 {
		t.Errorf("Expected listing pages 2000, got %d", cfg.ListingPages)
	}
	if cfg.FetchTimeout != 10 {
		t.Errorf("Expected fetch timeout 10, got %d", cfg.FetchTimeout)
	}
	if cfg.SchedulerInterval != 300 {
		t.Errorf("Expected scheduler interval 300, got %d", cfg.SchedulerInterval)
	}
	if cfg.EnrichURL != "http://localhost:5000/normalize" {
		t.Errorf("Expected enrich URL 'http://localhost:5000/normalize', got '%s'", cfg.EnrichURL)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
