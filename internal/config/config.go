package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPath overrides the config file location.
	EnvPath     = "ENCOUNTER_CONFIG"
	DefaultPath = "config/arena.yaml"
)

// Arena holds all configuration of the headless arena runner.
type Arena struct {
	LogLevel string `yaml:"log_level"`

	// Simulation
	TickRate         int     `yaml:"tick_rate"` // ticks per second
	MaxTicks         int     `yaml:"max_ticks"` // 0 runs until interrupted
	MinDamagePercent float64 `yaml:"min_damage_percent"`

	// Arena geometry
	Bounds     Rect    `yaml:"bounds"`
	RegionSize float64 `yaml:"region_size"`
	Obstacles  []Rect  `yaml:"obstacles"`

	// Spawning
	Spawn SpawnConfig `yaml:"spawn"`

	// Encounter
	DataPath   string `yaml:"data_path"` // empty uses embedded definitions
	WatchData  bool   `yaml:"watch_data"`
	Player     string `yaml:"player"`
	Boss       string `yaml:"boss"`
	PlayerAuto bool   `yaml:"player_auto"` // drive the player with the enemy AI

	// Database (optional)
	Database DatabaseConfig `yaml:"database"`
}

// Rect is an axis-aligned box in world units.
type Rect struct {
	L float64 `yaml:"l"`
	B float64 `yaml:"b"`
	R float64 `yaml:"r"`
	T float64 `yaml:"t"`
}

// BB converts the rect to a bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.L, B: r.B, R: r.R, T: r.T}
}

// SpawnConfig tunes spawn-point validation.
type SpawnConfig struct {
	Clearance   float64      `yaml:"clearance"`
	MinDistance float64      `yaml:"min_distance"`
	PlayerStart [2]float64   `yaml:"player_start"`
	BossPoints  [][2]float64 `yaml:"boss_points"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultArena returns Arena config with sensible defaults.
func DefaultArena() Arena {
	return Arena{
		LogLevel:         "info",
		TickRate:         30,
		MaxTicks:         0,
		MinDamagePercent: 0.2,
		Bounds:           Rect{L: -640, B: -360, R: 640, T: 360},
		RegionSize:       128,
		Obstacles: []Rect{
			{L: -200, B: -40, R: -140, T: 40},
			{L: 140, B: -40, R: 200, T: 40},
		},
		Spawn: SpawnConfig{
			Clearance:   8,
			MinDistance: 250,
			PlayerStart: [2]float64{-500, 0},
			BossPoints:  [][2]float64{{400, 0}, {400, 200}, {400, -200}, {0, 250}},
		},
		Player:     "knight",
		Boss:       "summoner",
		PlayerAuto: true,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "encounter",
			Password: "encounter",
			DBName:   "encounter",
			SSLMode:  "disable",
		},
	}
}

// Path returns the config path from ENCOUNTER_CONFIG or the default.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// LoadArena loads arena config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadArena(path string) (Arena, error) {
	cfg := DefaultArena()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.TickRate <= 0 {
		slog.Warn("invalid tick_rate, using default", "tick_rate", cfg.TickRate)
		cfg.TickRate = DefaultArena().TickRate
	}
	if cfg.RegionSize <= 0 {
		cfg.RegionSize = DefaultArena().RegionSize
	}

	return cfg, nil
}

// ParseLogLevel maps a config level name to slog. Unknown names mean info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
