package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("EDUSYNC_TEST_KEY", "value")
	if got := getEnv("EDUSYNC_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected set value, got %q", got)
	}
	if got := getEnv("EDUSYNC_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("EDUSYNC_TEST_TTL", "30m")
	if got := getEnvDuration("EDUSYNC_TEST_TTL", time.Hour); got != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", got)
	}

	t.Setenv("EDUSYNC_TEST_TTL", "nonsense")
	if got := getEnvDuration("EDUSYNC_TEST_TTL", time.Hour); got != time.Hour {
		t.Fatalf("expected fallback for unparseable value, got %s", got)
	}

	if got := getEnvDuration("EDUSYNC_TEST_TTL_MISSING", 24*time.Hour); got != 24*time.Hour {
		t.Fatalf("expected fallback for missing value, got %s", got)
	}
}
