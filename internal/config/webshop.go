package config

import (
	"net/url"
	"strings"
)

// WebshopConfig points the suite at the application under test
type WebshopConfig struct {
	BaseURL       string `env:"WEBSHOP_BASE_URL" validate:"required,url"`
	LoginEmail    string `env:"WEBSHOP_LOGIN_EMAIL" validate:"omitempty,email"`
	LoginPassword string `env:"WEBSHOP_LOGIN_PASSWORD" validate:"required_with=LoginEmail"`
}

// LoadWebshopConfig loads the webshop location and test account from environment variables
func LoadWebshopConfig(getenv func(string) string) (*WebshopConfig, error) {
	config := &WebshopConfig{
		BaseURL:       strings.TrimRight(getenv("WEBSHOP_BASE_URL"), "/"),
		LoginEmail:    getenv("WEBSHOP_LOGIN_EMAIL"),
		LoginPassword: getenv("WEBSHOP_LOGIN_PASSWORD"),
	}
	if err := check(config); err != nil {
		return nil, err
	}
	return config, nil
}

// Authorized reports whether a test account is configured
func (c *WebshopConfig) Authorized() bool {
	return c.LoginEmail != "" && c.LoginPassword != ""
}

// URL resolves path against the base URL
func (c *WebshopConfig) URL(path string) string {
	base, err := url.Parse(c.BaseURL + "/")
	if err != nil {
		return c.BaseURL + path
	}
	ref, err := url.Parse(strings.TrimLeft(path, "/"))
	if err != nil {
		return c.BaseURL + path
	}
	return base.ResolveReference(ref).String()
}
