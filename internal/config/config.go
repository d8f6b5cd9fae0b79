package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL = "OLLAMA_BASE_URL"
	EnvModel   = "OLLAMA_MODEL"
	EnvAPIKey  = "TODOAI_API_KEY"
	EnvData    = "TODOAI_DATA"
	EnvPort    = "TODOAI_PORT"

	DefaultModel   = "llama3.2"
	DefaultTimeout = 2 * time.Minute
)

type Config struct {
	Provider string        `yaml:"provider" validate:"omitempty,oneof=ollama groq openai openrouter custom"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Model    string        `yaml:"model" validate:"required"`
	BaseURL  string        `yaml:"base_url,omitempty" validate:"omitempty,url"`
	Timeout  time.Duration `yaml:"timeout,omitempty" validate:"gte=0"`

	// DataPath is the todo store file. Empty means DefaultDataPath.
	DataPath string `yaml:"data_path,omitempty"`

	Server ServerConfig `yaml:"server"`
}

type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`

	// AIRate limits AI help requests per client address.
	AIRate RateConfig `yaml:"ai_rate"`
}

// RateConfig is a request budget per period. A zero Limit disables it.
type RateConfig struct {
	Limit  int64         `yaml:"limit" validate:"gte=0"`
	Period time.Duration `yaml:"period" validate:"required_with=Limit"`
}

// Address returns host:port for net/http.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "ollama",
		Model:    DefaultModel,
		Timeout:  DefaultTimeout,
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 3000,
			AIRate: RateConfig{
				Limit:  30,
				Period: time.Minute,
			},
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "todoai"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func DefaultDataPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "todos.yaml"), nil
}

func Exists() bool {
	path, err := ConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Load reads the config from the default path. It returns nil, nil when
// no config file exists yet.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the config at path. Missing fields keep their defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with the environment variables that are
// set. getenv is usually os.Getenv. OLLAMA_BASE_URL and OLLAMA_MODEL only
// apply while the provider is Ollama.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.Provider == "" || c.Provider == "ollama" {
		if v := getenv(EnvBaseURL); v != "" {
			c.BaseURL = v
		}
		if v := getenv(EnvModel); v != "" {
			c.Model = v
		}
	}
	if v := getenv(EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(EnvData); v != "" {
		c.DataPath = v
	}
	if v := getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// ResolvedBaseURL returns BaseURL, or the provider preset when unset.
func (c *Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if p := GetProvider(c.Provider); p != nil {
		return p.BaseURL
	}
	return ""
}

// ResolvedDataPath returns DataPath, or DefaultDataPath when unset.
func (c *Config) ResolvedDataPath() (string, error) {
	if c.DataPath != "" {
		return c.DataPath, nil
	}
	return DefaultDataPath()
}

// RequestTimeout returns the deadline callers put on one AI request.
func (c *Config) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
