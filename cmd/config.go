package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// CanvasConfig is the structure of canvas.yml.
type CanvasConfig struct {
	// Server settings for `canvas serve`.
	Server ServerSettings `yaml:"server"`
	// Client settings for `canvas chat` and `canvas upload`.
	Client ClientSettings `yaml:"client"`
	// LogLevel is a logrus level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
}

// ServerSettings configures the chat backend.
type ServerSettings struct {
	Addr            string `yaml:"addr"`
	Model           string `yaml:"model"`
	StaticDir       string `yaml:"static_dir"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
	MaxOutputTokens int    `yaml:"max_output_tokens"`
}

// ClientSettings configures the terminal client.
type ClientSettings struct {
	BackendURL string `yaml:"backend_url"`
}

// defaultConfig returns the settings used when no canvas.yml exists.
func defaultConfig() *CanvasConfig {
	return &CanvasConfig{
		Server: ServerSettings{
			Addr:  ":5000",
			Model: "gemini-2.5-flash",
		},
		Client: ClientSettings{
			BackendURL: "http://localhost:5000",
		},
		LogLevel: "info",
	}
}

// loadConfig reads canvas.yml from path when given, otherwise from the
// working directory, then the user config directory. A missing file yields
// defaults, not an error.
func loadConfig(path string) (*CanvasConfig, error) {
	candidates := []string{path}
	if path == "" {
		candidates = []string{"canvas.yml"}
		if base, err := os.UserConfigDir(); err == nil {
			candidates = append(candidates, filepath.Join(base, "canvas", "canvas.yml"))
		}
	}

	cfg := defaultConfig()
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		data, err := os.ReadFile(candidate)
		if err != nil {
			if os.IsNotExist(err) && path == "" {
				continue
			}
			return nil, fmt.Errorf("reading config %s: %w", candidate, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", candidate, err)
		}
		return cfg, nil
	}
	return cfg, nil
}

func (c *CanvasConfig) serverTimeout() time.Duration {
	if c.Server.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
