package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Analysis.MinArticles != 3 {
		t.Errorf("min_articles = %d, want 3", cfg.Analysis.MinArticles)
	}
	if cfg.Analysis.TargetArticles != 5 {
		t.Errorf("target_articles = %d, want 5", cfg.Analysis.TargetArticles)
	}
	if cfg.Analysis.MinRelevance != 0.55 {
		t.Errorf("min_relevance = %v, want 0.55", cfg.Analysis.MinRelevance)
	}
	if len(cfg.Analysis.RelevanceSchedule) != 3 {
		t.Errorf("relevance_schedule = %v, want 3 entries", cfg.Analysis.RelevanceSchedule)
	}
	if cfg.Scorer.MaxArticles != 15 {
		t.Errorf("scorer.max_articles = %d, want 15", cfg.Scorer.MaxArticles)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("api.port = %d, want 8080", cfg.API.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging.level = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
analysis:
  min_articles: 4
  target_articles: 8
scorer:
  model: gpt-4o
api:
  port: 9090
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Analysis.MinArticles != 4 {
		t.Errorf("min_articles = %d, want 4", cfg.Analysis.MinArticles)
	}
	if cfg.Analysis.TargetArticles != 8 {
		t.Errorf("target_articles = %d, want 8", cfg.Analysis.TargetArticles)
	}
	if cfg.Scorer.Model != "gpt-4o" {
		t.Errorf("scorer.model = %q, want gpt-4o", cfg.Scorer.Model)
	}
	if cfg.API.Port != 9090 {
		t.Errorf("api.port = %d, want 9090", cfg.API.Port)
	}
	// Values not in the file keep their defaults.
	if cfg.Analysis.MinRelevance != 0.55 {
		t.Errorf("min_relevance = %v, want default 0.55", cfg.Analysis.MinRelevance)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestScorerKeyFromEnv(t *testing.T) {
	t.Setenv("TICKERSENSE_SCORER_API_KEY", "sk-test-123")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Scorer.APIKey != "sk-test-123" {
		t.Errorf("scorer.api_key = %q, want sk-test-123", cfg.Scorer.APIKey)
	}
}
