package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/phuslu/log"

	"github.com/atb-as/webshop-e2e/internal/a11y"
	"github.com/atb-as/webshop-e2e/internal/browser"
	"github.com/atb-as/webshop-e2e/internal/config"
	"github.com/atb-as/webshop-e2e/internal/intercept"
)

// ErrViolations is returned when an audit finds anything
var ErrViolations = errors.New("accessibility violations found")

// AuditOptions selects what RunAudit checks
type AuditOptions struct {
	Path     string
	Scope    string
	Disabled []string
}

// RunAudit opens opts.Path and prints every accessibility violation to out
func RunAudit(cfg *config.Config, opts AuditOptions, out io.Writer, logger *log.Logger) error {
	session, err := browser.Launch(cfg.Browser, cfg.Webshop, intercept.NewRegistry(), logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Visit(opts.Path); err != nil {
		return err
	}

	auditor := a11y.NewAuditor(session.Page(), cfg.Browser.AxeScriptURL)
	violations, err := auditor.Audit(opts.Scope, a11y.Disable(opts.Disabled...))
	if err != nil {
		return err
	}
	logger.Info().Str("url", session.URL()).Int("violations", len(violations)).Msg("audit finished")
	return ReportViolations(out, opts.Path, violations)
}

// ReportViolations prints violations and fails when there are any
func ReportViolations(out io.Writer, path string, violations []a11y.Violation) error {
	if len(violations) == 0 {
		fmt.Fprintf(out, "/%s: no accessibility violations\n", path)
		return nil
	}
	fmt.Fprintf(out, "/%s: %d accessibility violations (%d serious)\n", path, len(violations), len(a11y.Serious(violations)))
	fmt.Fprint(out, a11y.Format(violations))
	return fmt.Errorf("%w on /%s: %d", ErrViolations, path, len(violations))
}
