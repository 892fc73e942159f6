package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "startupsp_test",
		StorageType:      "local",
		StorageLocalPath: "./uploads/submissions",
		Phase1Deadline:   time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC),
		Phase2Deadline:   time.Date(2026, 2, 20, 23, 59, 0, 0, time.UTC),
	}
}

func TestParseDeadline(t *testing.T) {
	got, err := parseDeadline("2026-01-15T23:59:00Z")
	if err != nil {
		t.Fatalf("parseDeadline() error = %v", err)
	}
	want := time.Date(2026, 1, 15, 23, 59, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDeadline() = %v, want %v", got, want)
	}

	got, err = parseDeadline("")
	if err != nil {
		t.Fatalf("parseDeadline(blank) error = %v", err)
	}
	if !got.IsZero() {
		t.Errorf("parseDeadline(blank) = %v, want zero time", got)
	}

	if _, err := parseDeadline("tomorrow"); err == nil {
		t.Error("parseDeadline(garbage) expected error")
	}
}

func TestValidateConfig(t *testing.T) {
	coreCfg := &config.CoreConfig{}
	logger := zap.NewNop()

	if err := ValidateConfig(coreCfg, validAppConfig(), logger); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"missing phase1 deadline", func(c *AppConfig) { c.Phase1Deadline = time.Time{} }},
		{"missing phase2 deadline", func(c *AppConfig) { c.Phase2Deadline = time.Time{} }},
		{"deadlines out of order", func(c *AppConfig) {
			c.Phase1Deadline, c.Phase2Deadline = c.Phase2Deadline, c.Phase1Deadline
		}},
		{"equal deadlines", func(c *AppConfig) { c.Phase2Deadline = c.Phase1Deadline }},
		{"unsupported storage type", func(c *AppConfig) { c.StorageType = "s3" }},
		{"bad mongo uri", func(c *AppConfig) { c.MongoURI = "not-a-uri" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validAppConfig()
			tc.mutate(&cfg)
			if err := ValidateConfig(coreCfg, cfg, logger); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
