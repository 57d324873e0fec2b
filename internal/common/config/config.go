package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string `env:"PORT" envDefault:"3000"`
	Environment  string `env:"ENV" envDefault:"development"`
	ReadTimeout  int    `env:"READ_TIMEOUT" envDefault:"10"`
	WriteTimeout int    `env:"WRITE_TIMEOUT" envDefault:"10"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	Planner Planner
}

// Planner содержит настройки сервиса планировщика.
type Planner struct {
	DBPath         string        `env:"PLANNER_DB_PATH" envDefault:"data/db/planner.db"`
	MaterialsDir   string        `env:"PLANNER_MATERIALS_DIR" envDefault:"data/materials"`
	LoadTimeout    time.Duration `env:"PLANNER_LOAD_TIMEOUT" envDefault:"30s"`
	ZoomStep       float64       `env:"PLANNER_ZOOM_STEP" envDefault:"1.2"`
	ZoomMin        float64       `env:"PLANNER_ZOOM_MIN" envDefault:"0.2"`
	ZoomMax        float64       `env:"PLANNER_ZOOM_MAX" envDefault:"5"`
	ViewportWidth  float64       `env:"PLANNER_VIEWPORT_WIDTH" envDefault:"1280"`
	ViewportHeight float64       `env:"PLANNER_VIEWPORT_HEIGHT" envDefault:"800"`
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Planner.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseEnv загружает конфигурацию из переменных окружения.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (p Planner) validate() error {
	switch {
	case p.ZoomStep <= 1:
		return fmt.Errorf("PLANNER_ZOOM_STEP must be greater than 1, got %v", p.ZoomStep)
	case p.ZoomMin <= 0 || p.ZoomMin > 1:
		return fmt.Errorf("PLANNER_ZOOM_MIN must be in (0, 1], got %v", p.ZoomMin)
	case p.ZoomMax < 1:
		return fmt.Errorf("PLANNER_ZOOM_MAX must be at least 1, got %v", p.ZoomMax)
	case p.ViewportWidth <= 0 || p.ViewportHeight <= 0:
		return fmt.Errorf("viewport size must be positive, got %vx%v", p.ViewportWidth, p.ViewportHeight)
	}
	return nil
}
