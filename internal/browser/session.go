// Package browser drives the webshop through playwright. Every element it
// hands out is a lazy locator, so no handle outlives the render it came from.
package browser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/phuslu/log"
	"github.com/playwright-community/playwright-go"

	"github.com/atb-as/webshop-e2e/internal/config"
	"github.com/atb-as/webshop-e2e/internal/intercept"
)

// Session is one browser with one page, the unit a scenario runs in
type Session struct {
	pw       *playwright.Playwright
	browser  playwright.Browser
	context  playwright.BrowserContext
	page     playwright.Page
	cfg      *config.BrowserConfig
	registry *intercept.Registry
	logger   *log.Logger

	mu       sync.Mutex
	inflight map[playwright.Request]*intercept.Request
}

// Install downloads the browser engines playwright needs
func Install(browsers ...string) error {
	if err := playwright.Install(&playwright.RunOptions{Browsers: browsers}); err != nil {
		return fmt.Errorf("failed to install playwright browsers: %w", err)
	}
	return nil
}

// Launch starts playwright and opens a page rooted at the webshop base URL.
// Requests are bound to the registry's aliases as they start and their
// responses forwarded once finished.
func Launch(cfg *config.BrowserConfig, shop *config.WebshopConfig, registry *intercept.Registry, logger *log.Logger) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	bt, err := browserType(pw, cfg.Name)
	if err != nil {
		pw.Stop()
		return nil, err
	}

	browser, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(cfg.SlowMo),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", cfg.Name, err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(shop.BaseURL + "/"),
		Locale:  playwright.String("nb-NO"),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(cfg.ImplicitWaitMillis())

	s := &Session{
		pw:       pw,
		browser:  browser,
		context:  bctx,
		page:     page,
		cfg:      cfg,
		registry: registry,
		logger:   logger,
		inflight: make(map[playwright.Request]*intercept.Request),
	}
	page.OnRequest(s.begin)
	page.OnResponse(s.respond)
	page.OnRequestFailed(s.fail)

	logger.Info().Str("browser", cfg.Name).Bool("headless", cfg.Headless).Str("base_url", shop.BaseURL).Msg("browser launched")
	return s, nil
}

func browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch strings.ToLower(name) {
	case "chromium", "":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// begin runs on playwright's event loop in the order requests start, so an
// alias only ever sees requests started after it was registered
func (s *Session) begin(req playwright.Request) {
	pending := s.registry.Begin(req.Method(), req.URL())
	if pending == nil {
		return
	}
	s.mu.Lock()
	s.inflight[req] = pending
	s.mu.Unlock()
}

func (s *Session) take(req playwright.Request) *intercept.Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.inflight[req]
	if ok {
		delete(s.inflight, req)
	}
	return pending
}

func (s *Session) respond(resp playwright.Response) {
	pending := s.take(resp.Request())
	if pending == nil {
		return
	}
	// reading the body needs the event loop this handler runs on
	go s.capture(pending, resp)
}

// capture waits for the response body and hands the exchange to the registry
func (s *Session) capture(pending *intercept.Request, resp playwright.Response) {
	ex := intercept.Exchange{
		Method: pending.Method,
		URL:    resp.URL(),
		Status: resp.Status(),
	}
	if err := resp.Finished(); err == nil {
		if body, err := resp.Body(); err == nil {
			ex.Body = body
		}
	}
	s.logger.Debug().Uint64("seq", pending.Seq).Str("method", ex.Method).Str("url", ex.URL).Int("status", ex.Status).Msg("response captured")
	s.registry.Complete(pending, ex)
}

func (s *Session) fail(req playwright.Request) {
	pending := s.take(req)
	if pending == nil {
		return
	}
	ex := intercept.Exchange{Method: pending.Method, URL: pending.URL, Failure: "request failed"}
	if err := req.Failure(); err != nil {
		ex.Failure = err.Error()
	}
	s.logger.Warn().Uint64("seq", pending.Seq).Str("method", ex.Method).Str("url", ex.URL).Str("failure", ex.Failure).Msg("request failed")
	s.registry.Complete(pending, ex)
}

// Visit navigates to path, relative to the webshop base URL
func (s *Session) Visit(path string) error {
	target := strings.TrimLeft(path, "/")
	if target == "" {
		target = "./"
	}
	if _, err := s.page.Goto(target); err != nil {
		return fmt.Errorf("failed to visit %s: %w", path, err)
	}
	return nil
}

// Reload reloads the current page
func (s *Session) Reload() error {
	if _, err := s.page.Reload(); err != nil {
		return fmt.Errorf("failed to reload %s: %w", s.page.URL(), err)
	}
	return nil
}

// URL returns the address of the current page
func (s *Session) URL() string {
	return s.page.URL()
}

// Page exposes the underlying page for collaborators such as the accessibility auditor
func (s *Session) Page() playwright.Page {
	return s.page
}

// Registry returns the intercept registry responses are forwarded to
func (s *Session) Registry() *intercept.Registry {
	return s.registry
}

// Close shuts down the page, the browser and playwright
func (s *Session) Close() error {
	if err := s.context.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close browser context")
	}
	if err := s.browser.Close(); err != nil {
		return fmt.Errorf("failed to close browser: %w", err)
	}
	if err := s.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
