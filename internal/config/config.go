package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AI      AIConfig      `yaml:"ai"`
	Voice   VoiceConfig   `yaml:"voice"`
	Storage StorageConfig `yaml:"storage"`
	Lessons LessonsConfig `yaml:"lessons"`
	Web     WebConfig     `yaml:"web"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type AIConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type VoiceConfig struct {
	TTS     SidecarConfig `yaml:"tts"`
	STT     SidecarConfig `yaml:"stt"`
	Timeout time.Duration `yaml:"timeout"`
}

type SidecarConfig struct {
	BaseURL string `yaml:"base_url"`
}

type StorageConfig struct {
	DataDir string `yaml:"data_dir"`
}

type LessonsConfig struct {
	Dir    string            `yaml:"dir"`
	Tracks map[string]string `yaml:"tracks"`
}

type WebConfig struct {
	StaticDir      string   `yaml:"static_dir"`
	AssetsDir      string   `yaml:"assets_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LoggingConfig struct {
	Mode string `yaml:"mode"`
}

// Load reads configuration from a YAML file and applies environment
// variable overrides. The returned value is never mutated after startup.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := os.Getenv("TTS_BASE_URL"); v != "" {
		cfg.Voice.TTS.BaseURL = v
	}
	if v := os.Getenv("STT_BASE_URL"); v != "" {
		cfg.Voice.STT.BaseURL = v
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Web.AllowedOrigins = splitCSV(v)
	}
}

func applyDefaults(cfg *Config) {
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 1000
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.7
	}
	if cfg.Voice.Timeout == 0 {
		cfg.Voice.Timeout = 2 * time.Minute
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 3 * time.Minute
	}
	if len(cfg.Web.AllowedOrigins) == 0 {
		cfg.Web.AllowedOrigins = []string{"*"}
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port == 0 {
		return fmt.Errorf("config: server.port is required")
	}
	if cfg.Storage.DataDir == "" {
		return fmt.Errorf("config: storage.data_dir is required")
	}
	// A missing API key is not fatal: ask endpoints report 503 until one
	// is configured. The same applies to the voice sidecar base URLs.
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
