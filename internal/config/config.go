package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/npcai/internal/model"
)

// DefaultPath is used when NPCAI_CONFIG is not set.
const DefaultPath = "config/npcsim.yaml"

// PathEnv names the environment variable holding the config path.
const PathEnv = "NPCAI_CONFIG"

// ErrInvalidConfig is returned by Simulation.Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Patrol shapes.
const (
	ShapeRect   = "rect"
	ShapeSphere = "sphere"
)

// Simulation holds all configuration of the headless simulation.
type Simulation struct {
	LogLevel     string        `yaml:"log_level"`
	TickInterval time.Duration `yaml:"tick_interval"`
	Seed         uint64        `yaml:"seed"`
	Duration     time.Duration `yaml:"duration"` // 0 runs until interrupted

	Surface  SurfaceConfig  `yaml:"surface"`
	Target   TargetConfig   `yaml:"target"`
	Agents   []AgentConfig  `yaml:"agents"`
	Database DatabaseConfig `yaml:"database"`
}

// SurfaceConfig is the walkable ground: a rectangle on XZ minus obstacle polygons.
type SurfaceConfig struct {
	Min       [2]float64     `yaml:"min"` // x, z
	Max       [2]float64     `yaml:"max"`
	GroundY   float64        `yaml:"ground_y"`
	Obstacles [][][2]float64 `yaml:"obstacles"` // closed or open rings of x, z
}

// TargetConfig describes the tracked player stand-in.
type TargetConfig struct {
	Name      string       `yaml:"name"`
	Tag       string       `yaml:"tag"`
	Spawn     model.Vec3   `yaml:"spawn"`
	MaxHealth int32        `yaml:"max_health"`
	Speed     float64      `yaml:"speed"`
	Waypoints []model.Vec3 `yaml:"waypoints"`
}

// AgentConfig describes one enemy agent.
type AgentConfig struct {
	Name          string                `yaml:"name"`
	Spawn         model.Vec3            `yaml:"spawn"`
	AttackCapable bool                  `yaml:"attack_capable"`
	Profile       model.BehaviorProfile `yaml:"profile"`
	Patrol        PatrolConfig          `yaml:"patrol"`
	AttackClip    ClipConfig            `yaml:"attack_clip"`
}

// PatrolConfig is the patrol extent. A nil Center anchors it at the spawn point.
type PatrolConfig struct {
	Shape  string      `yaml:"shape"`
	Center *model.Vec3 `yaml:"center"`
	Size   [2]float64  `yaml:"size"`   // rect: x, z
	Radius float64     `yaml:"radius"` // sphere
}

// ClipConfig is the timing of the attack animation.
type ClipConfig struct {
	Length      float64 `yaml:"length"`
	DamageStart float64 `yaml:"damage_start"`
	DamageEnd   float64 `yaml:"damage_end"`
}

// DefaultAgent returns the stock melee enemy. Agent entries in YAML start from it.
func DefaultAgent() AgentConfig {
	return AgentConfig{
		Name:          "enemy",
		AttackCapable: true,
		Profile:       model.DefaultBehaviorProfile(),
		Patrol: PatrolConfig{
			Shape: ShapeRect,
			Size:  [2]float64{20, 20},
		},
		AttackClip: ClipConfig{
			Length:      1.5,
			DamageStart: 0.4,
			DamageEnd:   0.8,
		},
	}
}

// UnmarshalYAML decodes an agent on top of DefaultAgent.
func (a *AgentConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain AgentConfig
	p := plain(DefaultAgent())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = AgentConfig(p)
	return nil
}

// DefaultSimulation returns a small arena with one attacker and one watcher.
func DefaultSimulation() Simulation {
	watcher := DefaultAgent()
	watcher.Name = "sentinel"
	watcher.Spawn = model.NewVec3(-12, 0, 12)
	watcher.AttackCapable = false
	watcher.Patrol = PatrolConfig{Shape: ShapeSphere, Radius: 8}
	watcher.Profile.SearchNearbyRadius = watcher.Patrol.Radius

	brute := DefaultAgent()
	brute.Name = "canavar"
	brute.Spawn = model.NewVec3(10, 0, -10)

	return Simulation{
		LogLevel:     "info",
		TickInterval: 50 * time.Millisecond,
		Seed:         1,
		Surface: SurfaceConfig{
			Min: [2]float64{-30, -30},
			Max: [2]float64{30, 30},
			Obstacles: [][][2]float64{
				{{-2, -2}, {2, -2}, {2, 2}, {-2, 2}},
			},
		},
		Target: TargetConfig{
			Name:      "hero",
			Tag:       "Player",
			Spawn:     model.NewVec3(0, 0, -20),
			MaxHealth: 100,
			Speed:     3,
			Waypoints: []model.Vec3{
				model.NewVec3(0, 0, -20),
				model.NewVec3(20, 0, -20),
				model.NewVec3(20, 0, 20),
				model.NewVec3(-20, 0, 20),
				model.NewVec3(-20, 0, -20),
			},
		},
		Agents: []AgentConfig{brute, watcher},
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "npcai",
			Password: "npcai",
			DBName:   "npcai",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulation loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	// a present agents list replaces the default one entirely
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// PathFromEnv returns the config path from NPCAI_CONFIG or DefaultPath.
func PathFromEnv() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}
	return DefaultPath
}

// Validate checks the whole config.
func (s Simulation) Validate() error {
	if s.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidConfig)
	}
	if s.Surface.Min[0] >= s.Surface.Max[0] || s.Surface.Min[1] >= s.Surface.Max[1] {
		return fmt.Errorf("%w: surface min must be below max", ErrInvalidConfig)
	}
	for i, ring := range s.Surface.Obstacles {
		if len(ring) < 3 {
			return fmt.Errorf("%w: obstacle %d needs at least 3 points", ErrInvalidConfig, i)
		}
	}
	if s.Target.Tag == "" {
		return fmt.Errorf("%w: target tag is empty", ErrInvalidConfig)
	}
	if s.Target.MaxHealth <= 0 {
		return fmt.Errorf("%w: target max_health must be positive", ErrInvalidConfig)
	}
	if len(s.Agents) == 0 {
		return fmt.Errorf("%w: no agents", ErrInvalidConfig)
	}

	names := make(map[string]struct{}, len(s.Agents))
	for _, a := range s.Agents {
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("%w: duplicate agent name %q", ErrInvalidConfig, a.Name)
		}
		names[a.Name] = struct{}{}

		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks one agent entry.
func (a AgentConfig) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: agent without name", ErrInvalidConfig)
	}
	if err := a.Profile.Validate(); err != nil {
		return fmt.Errorf("agent %s: %w", a.Name, err)
	}

	switch a.Patrol.Shape {
	case ShapeRect:
		if a.Patrol.Size[0] <= 0 || a.Patrol.Size[1] <= 0 {
			return fmt.Errorf("%w: agent %s: patrol size must be positive", ErrInvalidConfig, a.Name)
		}
	case ShapeSphere:
		if a.Patrol.Radius <= 0 {
			return fmt.Errorf("%w: agent %s: patrol radius must be positive", ErrInvalidConfig, a.Name)
		}
	default:
		return fmt.Errorf("%w: agent %s: unknown patrol shape %q", ErrInvalidConfig, a.Name, a.Patrol.Shape)
	}

	if a.AttackCapable {
		c := a.AttackClip
		if c.Length <= 0 || c.DamageStart < 0 || c.DamageStart >= c.DamageEnd || c.DamageEnd > c.Length {
			return fmt.Errorf("%w: agent %s: attack clip timings must satisfy 0 <= start < end <= length",
				ErrInvalidConfig, a.Name)
		}
	}
	return nil
}

// SlogLevel maps log_level onto a slog level (info if unknown).
func (s Simulation) SlogLevel() slog.Level {
	switch s.LogLevel {
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

// DatabaseConfig holds PostgreSQL connection parameters.
// Persistence is off unless Enabled.
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
