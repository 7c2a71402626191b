package config

import "github.com/phuslu/log"

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
}

// LoadLogConfig loads logging configuration from environment variables
func LoadLogConfig(getenv func(string) string) (*LogConfig, error) {
	config := &LogConfig{
		Level: stringVar(getenv, "LOG_LEVEL", "info"),
	}
	if err := check(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Logger builds a console logger at the configured level
func (c *LogConfig) Logger() *log.Logger {
	return &log.Logger{
		Level: log.ParseLevel(c.Level),
		Writer: &log.ConsoleWriter{
			ColorOutput:    true,
			EndWithMessage: true,
		},
	}
}
