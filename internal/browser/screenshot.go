package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Screenshot saves a full-page capture into the artifacts directory and returns its path
func (s *Session) Screenshot(name string) (string, error) {
	path := artifactPath(s.cfg.ArtifactsDir, name, uuid.NewString())
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	if _, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot %s: %w", name, err)
	}
	return path, nil
}

func artifactPath(dir, name, id string) string {
	name = strings.Trim(unsafeName.ReplaceAllString(name, "_"), "_")
	if name == "" {
		name = "screenshot"
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.png", name, id))
}
