package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	LLM        LLMConfig        `mapstructure:"llm"`
	Generation GenerationConfig `mapstructure:"generation"`
	Carousel   CarouselConfig   `mapstructure:"carousel"`
	Log        LogConfig        `mapstructure:"log"`
}

// LLMConfig holds provider settings.
type LLMConfig struct {
	Provider   string        `mapstructure:"provider"`
	APIKeyEnv  string        `mapstructure:"api_key_env"`
	APIKey     string        `mapstructure:"api_key"`
	TextModel  string        `mapstructure:"text_model"`
	ImageModel string        `mapstructure:"image_model"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// GenerationConfig controls how a prompt is fanned out into scenes.
type GenerationConfig struct {
	SceneCount        int `mapstructure:"scene_count"`
	Concurrency       int `mapstructure:"concurrency"`
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
}

// CarouselConfig holds timing and geometry of the inline view.
type CarouselConfig struct {
	AutoplayInterval time.Duration `mapstructure:"autoplay_interval"`
	ItemRatio        float64       `mapstructure:"item_ratio"`
	Gap              int           `mapstructure:"gap"`
	FrameInterval    time.Duration `mapstructure:"frame_interval"`
}

// LogConfig holds the log file location and level.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

var ErrInvalid = errors.New("invalid config")

// Load reads configuration from file and env. Env var overrides use prefix CAROUSEL_.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("CAROUSEL_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "carousel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("CAROUSEL")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist; the default location is optional
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "gemini")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.text_model", "gemini-3-flash-preview")
	v.SetDefault("llm.image_model", "gemini-2.5-flash-image")
	v.SetDefault("llm.timeout", 90*time.Second)
	v.SetDefault("generation.scene_count", 8)
	v.SetDefault("generation.concurrency", 4)
	v.SetDefault("generation.requests_per_minute", 30)
	v.SetDefault("carousel.autoplay_interval", 5*time.Second)
	v.SetDefault("carousel.item_ratio", 0.8)
	v.SetDefault("carousel.gap", 2)
	v.SetDefault("carousel.frame_interval", 16*time.Millisecond)
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "carousel", "carousel.log"))
	v.SetDefault("log.level", "info")
}

// Validate rejects values the navigators and generator cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Generation.SceneCount < 1 || c.Generation.SceneCount > 16:
		return fmt.Errorf("%w: generation.scene_count must be in [1, 16], got %d", ErrInvalid, c.Generation.SceneCount)
	case c.Generation.Concurrency < 1:
		return fmt.Errorf("%w: generation.concurrency must be at least 1", ErrInvalid)
	case c.Generation.RequestsPerMinute < 0:
		return fmt.Errorf("%w: generation.requests_per_minute must not be negative", ErrInvalid)
	case c.Carousel.AutoplayInterval <= 0:
		return fmt.Errorf("%w: carousel.autoplay_interval must be positive", ErrInvalid)
	case c.Carousel.ItemRatio <= 0 || c.Carousel.ItemRatio > 1:
		return fmt.Errorf("%w: carousel.item_ratio must be in (0, 1], got %v", ErrInvalid, c.Carousel.ItemRatio)
	case c.Carousel.Gap < 0:
		return fmt.Errorf("%w: carousel.gap must not be negative", ErrInvalid)
	case c.Carousel.FrameInterval <= 0:
		return fmt.Errorf("%w: carousel.frame_interval must be positive", ErrInvalid)
	}
	return nil
}
