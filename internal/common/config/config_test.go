package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "3000" || cfg.Environment != "development" || cfg.ReadTimeout != 10 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	p := cfg.Planner
	if p.ZoomStep != 1.2 || p.ZoomMin != 0.2 || p.ZoomMax != 5 || p.LoadTimeout != 30*time.Second {
		t.Fatalf("unexpected planner config %+v", p)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "3005")
	t.Setenv("PLANNER_ZOOM_STEP", "2")
	t.Setenv("PLANNER_VIEWPORT_WIDTH", "640")
	t.Setenv("PLANNER_DB_PATH", "/tmp/planner.db")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "3005" || cfg.Planner.ZoomStep != 2 || cfg.Planner.ViewportWidth != 640 || cfg.Planner.DBPath != "/tmp/planner.db" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"READ_TIMEOUT", "soon", "parse env:"},
		{"PLANNER_ZOOM_STEP", "1", "PLANNER_ZOOM_STEP"},
		{"PLANNER_ZOOM_MIN", "0", "PLANNER_ZOOM_MIN"},
		{"PLANNER_ZOOM_MAX", "0.5", "PLANNER_ZOOM_MAX"},
		{"PLANNER_VIEWPORT_HEIGHT", "-1", "viewport"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
