package config

import (
	"fmt"
	"sync/atomic"
)

var configValue atomic.Value

func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Service     string          `mapstructure:"service"`
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Debug       bool            `mapstructure:"debug"`
	Server      ServerConfig    `mapstructure:"server"`
	Weather     WeatherConfig   `mapstructure:"weather"`
	LLM         LLMConfig       `mapstructure:"llm"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// WeatherConfig configures the OpenWeatherMap current-weather client.
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
	Timeout int    `mapstructure:"timeout"`
}

// LLMConfig configures the chat-completion client used for activity suggestions.
type LLMConfig struct {
	BaseURL     string  `mapstructure:"base_url"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	Timeout     int     `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// Error reports a missing or invalid setting. It is fatal: the process
// must not start serving with it.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Key, e.Message)
}

func NewDefaultConfig() *Config {
	return &Config{
		Service:     "Weather-Based Activity Recommender",
		Version:     "0.1.0",
		Environment: "development",
		Debug:       false,
		Server: ServerConfig{
			Port:         8000,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 60,
			IdleTimeout:  60,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org/data/2.5/weather",
			APIKey:  "",
			Timeout: 15,
		},
		LLM: LLMConfig{
			BaseURL:     "https://api.openai.com/v1",
			APIKey:      "",
			Model:       "gpt-4-turbo-preview",
			Temperature: 0.7,
			Timeout:     30,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}

// Validate checks the settings both provider clients need before any request
// can reach them.
func (c *Config) Validate() error {
	if c.Weather.APIKey == "" {
		return &Error{Key: EnvOpenWeatherAPIKey, Message: "OpenWeatherMap API key not configured"}
	}
	if c.LLM.APIKey == "" {
		return &Error{Key: EnvOpenAIAPIKey, Message: "OpenAI API key not configured"}
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &Error{Key: EnvPort, Message: fmt.Sprintf("invalid port %d", c.Server.Port)}
	}
	return nil
}
