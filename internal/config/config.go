package config

import (
	"errors"
	"fmt"
	"strings"

	"arbowling/internal/bowling"
	"arbowling/internal/tracking"
	"arbowling/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ARBOWLING_GAME_SHOTSPEED.
const EnvPrefix = "ARBOWLING"

// DefaultName is the config file looked up in the working directory when
// no path is given.
const DefaultName = "arbowling"

type Vec3 struct {
	X float32 `mapstructure:"x"`
	Y float32 `mapstructure:"y"`
	Z float32 `mapstructure:"z"`
}

func (v Vec3) Vector3() rl.Vector3 {
	return rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}
}

type WindowConfig struct {
	Width     int32  `mapstructure:"width"`
	Height    int32  `mapstructure:"height"`
	Title     string `mapstructure:"title"`
	TargetFPS int32  `mapstructure:"targetFPS"`
}

type AssetsConfig struct {
	Lane string `mapstructure:"lane"`
	Room string `mapstructure:"room"`
}

type PhysicsConfig struct {
	Gravity Vec3 `mapstructure:"gravity"`
}

type GameConfig struct {
	ShotSpeed          float32 `mapstructure:"shotSpeed"`
	ShotVertical       float32 `mapstructure:"shotVertical"`
	ProjectileRadius   float32 `mapstructure:"projectileRadius"`
	ProjectileMass     float32 `mapstructure:"projectileMass"`
	ProjectileLifetime float64 `mapstructure:"projectileLifetime"`
	PinRemovalDelay    float64 `mapstructure:"pinRemovalDelay"`
	AmbientFactor      float32 `mapstructure:"ambientFactor"`
}

type DeviceConfig struct {
	Position        Vec3    `mapstructure:"position"`
	Yaw             float32 `mapstructure:"yaw"`
	Pitch           float32 `mapstructure:"pitch"`
	FOV             float32 `mapstructure:"fov"`
	MoveSpeed       float32 `mapstructure:"moveSpeed"`
	LookSpeed       float32 `mapstructure:"lookSpeed"`
	LightEstimation bool    `mapstructure:"lightEstimation"`
	BaseIntensity   float32 `mapstructure:"baseIntensity"`
	DimmerStep      float32 `mapstructure:"dimmerStep"`
}

type Config struct {
	LogLevel string        `mapstructure:"logLevel"`
	Window   WindowConfig  `mapstructure:"window"`
	Assets   AssetsConfig  `mapstructure:"assets"`
	Physics  PhysicsConfig `mapstructure:"physics"`
	Game     GameConfig    `mapstructure:"game"`
	Device   DeviceConfig  `mapstructure:"device"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.title", "AR Bowling")
	v.SetDefault("window.targetFPS", 60)

	v.SetDefault("assets.lane", "assets/scenes/lane.yaml")
	v.SetDefault("assets.room", "assets/scenes/room.yaml")

	v.SetDefault("physics.gravity.x", 0)
	v.SetDefault("physics.gravity.y", -9.8)
	v.SetDefault("physics.gravity.z", 0)

	game := bowling.DefaultSettings()
	v.SetDefault("game.shotSpeed", game.ShotSpeed)
	v.SetDefault("game.shotVertical", game.ShotVertical)
	v.SetDefault("game.projectileRadius", game.ProjectileRadius)
	v.SetDefault("game.projectileMass", game.ProjectileMass)
	v.SetDefault("game.projectileLifetime", game.ProjectileLifetime)
	v.SetDefault("game.pinRemovalDelay", game.PinRemovalDelay)
	v.SetDefault("game.ambientFactor", game.AmbientFactor)

	device := tracking.DefaultDeviceConfig()
	v.SetDefault("device.position.x", device.Position.X)
	v.SetDefault("device.position.y", device.Position.Y)
	v.SetDefault("device.position.z", device.Position.Z)
	v.SetDefault("device.yaw", device.Yaw)
	v.SetDefault("device.pitch", device.Pitch)
	v.SetDefault("device.fov", device.FOV)
	v.SetDefault("device.moveSpeed", device.MoveSpeed)
	v.SetDefault("device.lookSpeed", device.LookSpeed)
	v.SetDefault("device.lightEstimation", device.LightEstimation)
	v.SetDefault("device.baseIntensity", device.BaseIntensity)
	v.SetDefault("device.dimmerStep", device.DimmerStep)
}

// Load builds the configuration from defaults, the YAML file at path and
// ARBOWLING_* environment variables, in increasing priority. An empty path
// looks for arbowling.yaml in the working directory and carries on without
// it when there is none; an explicit path must be readable.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Settings returns the game tuning.
func (c *Config) Settings() bowling.Settings {
	return bowling.Settings{
		ShotSpeed:          c.Game.ShotSpeed,
		ShotVertical:       c.Game.ShotVertical,
		ProjectileRadius:   c.Game.ProjectileRadius,
		ProjectileMass:     c.Game.ProjectileMass,
		ProjectileLifetime: c.Game.ProjectileLifetime,
		PinRemovalDelay:    c.Game.PinRemovalDelay,
		AmbientFactor:      c.Game.AmbientFactor,
	}
}

// WorldOptions returns the scene and physics setup.
func (c *Config) WorldOptions() world.Options {
	return world.Options{
		Gravity:          c.Physics.Gravity.Vector3(),
		LaneAsset:        c.Assets.Lane,
		EnvironmentAsset: c.Assets.Room,
	}
}

// DeviceConfig returns the simulated device setup. The aspect follows the
// window.
func (c *Config) DeviceConfig() tracking.DeviceConfig {
	d := c.Device
	aspect := float32(16.0 / 9.0)
	if c.Window.Height > 0 {
		aspect = float32(c.Window.Width) / float32(c.Window.Height)
	}
	return tracking.DeviceConfig{
		Position:        d.Position.Vector3(),
		Yaw:             d.Yaw,
		Pitch:           d.Pitch,
		FOV:             d.FOV,
		Aspect:          aspect,
		MoveSpeed:       d.MoveSpeed,
		LookSpeed:       d.LookSpeed,
		LightEstimation: d.LightEstimation,
		BaseIntensity:   d.BaseIntensity,
		DimmerStep:      d.DimmerStep,
	}
}
