// Package config loads the suite's settings from the environment.
package config

// Config bundles everything a scenario run needs
type Config struct {
	Webshop  *WebshopConfig
	Suite    *SuiteConfig
	Browser  *BrowserConfig
	Log      *LogConfig
	Postgres *PostgresConfig
}

// Load reads every section, stopping at the first invalid one
func Load(getenv func(string) string) (*Config, error) {
	var (
		cfg Config
		err error
	)
	if cfg.Webshop, err = LoadWebshopConfig(getenv); err != nil {
		return nil, err
	}
	if cfg.Suite, err = LoadSuiteConfig(getenv); err != nil {
		return nil, err
	}
	if cfg.Browser, err = LoadBrowserConfig(getenv); err != nil {
		return nil, err
	}
	if cfg.Log, err = LoadLogConfig(getenv); err != nil {
		return nil, err
	}
	if cfg.Postgres, err = LoadPostgresConfig(getenv); err != nil {
		return nil, err
	}
	return &cfg, nil
}
