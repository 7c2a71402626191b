package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/phuslu/log"

	"github.com/atb-as/webshop-e2e/internal/browser"
	"github.com/atb-as/webshop-e2e/internal/config"
	"github.com/atb-as/webshop-e2e/internal/intercept"
)

// CheckReachable requests url and fails unless it answers below 400
func CheckReachable(ctx context.Context, client *http.Client, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("invalid url %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("webshop not reachable at %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, fmt.Errorf("webshop at %s answered %d", url, resp.StatusCode)
	}
	return resp.StatusCode, nil
}

// RunCheck verifies that the webshop answers over HTTP and loads in the browser
func RunCheck(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	client := &http.Client{Timeout: 30 * time.Second}
	status, err := CheckReachable(ctx, client, cfg.Webshop.BaseURL)
	if err != nil {
		return err
	}
	logger.Info().Str("url", cfg.Webshop.BaseURL).Int("status", status).Msg("webshop reachable")

	session, err := browser.Launch(cfg.Browser, cfg.Webshop, intercept.NewRegistry(), logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Visit(""); err != nil {
		return err
	}
	title, err := session.Page().Title()
	if err != nil {
		return fmt.Errorf("failed to read page title: %w", err)
	}
	logger.Info().Str("browser", cfg.Browser.Name).Str("url", session.URL()).Str("title", title).Msg("webshop loaded")
	return nil
}
