package config

import "time"

const defaultAxeScriptURL = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.8.2/axe.min.js"

// BrowserConfig controls how playwright launches and drives the browser
type BrowserConfig struct {
	Name         string        `env:"BROWSER" validate:"oneof=chromium firefox webkit"`
	Headless     bool          `env:"HEADLESS"`
	SlowMo       float64       `env:"SLOW_MO" validate:"gte=0"`
	ImplicitWait time.Duration `env:"IMPLICIT_WAIT" validate:"required"`
	AxeScriptURL string        `env:"AXE_SCRIPT_URL" validate:"required,url"`
	ArtifactsDir string        `env:"ARTIFACTS_DIR" validate:"required"`
}

// LoadBrowserConfig loads browser settings from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	var err error
	config := &BrowserConfig{
		Name:         stringVar(getenv, "BROWSER", "chromium"),
		AxeScriptURL: stringVar(getenv, "AXE_SCRIPT_URL", defaultAxeScriptURL),
		ArtifactsDir: stringVar(getenv, "ARTIFACTS_DIR", "test-results"),
	}

	if config.Headless, err = boolVar(getenv, "HEADLESS", true); err != nil {
		return nil, err
	}
	if config.SlowMo, err = floatVar(getenv, "SLOW_MO", 0); err != nil {
		return nil, err
	}
	if config.ImplicitWait, err = durationVar(getenv, "IMPLICIT_WAIT", 4*time.Second); err != nil {
		return nil, err
	}

	if err := check(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ImplicitWaitMillis returns the implicit wait in the unit playwright expects
func (c *BrowserConfig) ImplicitWaitMillis() float64 {
	return float64(c.ImplicitWait.Milliseconds())
}
