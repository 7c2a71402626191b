package config

// ServerConfig holds server-specific configuration for the stub webshop
type ServerConfig struct {
	Port string `env:"PORT" validate:"numeric"`
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	config := ServerConfig{
		Port: stringVar(getenv, "PORT", "8080"),
	}
	if err := check(config); err != nil {
		return ServerConfig{}, err
	}
	return config, nil
}
