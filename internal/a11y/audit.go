// Package a11y runs axe-core against the page under test.
package a11y

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Page is the part of a playwright page the auditor needs
type Page interface {
	Evaluate(expression string, arg ...interface{}) (interface{}, error)
	AddScriptTag(options playwright.PageAddScriptTagOptions) (playwright.ElementHandle, error)
}

// Rule toggles a single axe rule
type Rule struct {
	Enabled bool `json:"enabled"`
}

// RuleOverrides maps axe rule ids to their setting for one audit
type RuleOverrides map[string]Rule

// Disable returns overrides that switch off every named rule
func Disable(ids ...string) RuleOverrides {
	rules := make(RuleOverrides, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			rules[id] = Rule{Enabled: false}
		}
	}
	return rules
}

// Node is one offending element
type Node struct {
	Target []string `json:"target"`
	HTML   string   `json:"html"`
}

// Violation is one failed axe rule with the elements that fail it
type Violation struct {
	ID          string `json:"id"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
	Help        string `json:"help"`
	Nodes       []Node `json:"nodes"`
}

const injectedCheck = `() => typeof window.axe !== 'undefined'`

const runAudit = `async ([scope, rules]) => {
	const context = scope ? document.querySelector(scope) : document;
	if (!context) {
		throw new Error('audit scope not found: ' + scope);
	}
	const results = await axe.run(context, { rules });
	return results.violations.map(v => ({
		id: v.id,
		impact: v.impact || '',
		description: v.description,
		help: v.help,
		nodes: v.nodes.map(n => ({ target: n.target.map(String), html: n.html })),
	}));
}`

// Auditor injects axe-core into the page once per document and runs audits
type Auditor struct {
	page      Page
	scriptURL string
}

// NewAuditor creates an auditor that loads axe from scriptURL
func NewAuditor(page Page, scriptURL string) *Auditor {
	return &Auditor{page: page, scriptURL: scriptURL}
}

// Audit checks scope (a CSS selector, empty for the whole document) and returns every violation
func (a *Auditor) Audit(scope string, rules RuleOverrides) ([]Violation, error) {
	if err := a.inject(); err != nil {
		return nil, err
	}
	if rules == nil {
		rules = RuleOverrides{}
	}

	raw, err := a.page.Evaluate(runAudit, []interface{}{scope, rules})
	if err != nil {
		return nil, fmt.Errorf("failed to run accessibility audit: %w", err)
	}
	return decodeViolations(raw)
}

func (a *Auditor) inject() error {
	loaded, err := a.page.Evaluate(injectedCheck)
	if err != nil {
		return fmt.Errorf("failed to check for axe-core: %w", err)
	}
	if ok, _ := loaded.(bool); ok {
		return nil
	}
	if _, err := a.page.AddScriptTag(playwright.PageAddScriptTagOptions{URL: playwright.String(a.scriptURL)}); err != nil {
		return fmt.Errorf("failed to inject axe-core from %s: %w", a.scriptURL, err)
	}
	return nil
}

// decodeViolations converts the evaluated JS value through JSON into typed violations
func decodeViolations(raw interface{}) ([]Violation, error) {
	if raw == nil {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit result: %w", err)
	}
	var violations []Violation
	if err := json.Unmarshal(data, &violations); err != nil {
		return nil, fmt.Errorf("failed to decode audit result: %w", err)
	}
	return violations, nil
}

// Serious keeps the critical and serious violations
func Serious(violations []Violation) []Violation {
	var out []Violation
	for _, v := range violations {
		if v.Impact == "critical" || v.Impact == "serious" {
			out = append(out, v)
		}
	}
	return out
}

// Format renders one line per violation, followed by its offending targets
func Format(violations []Violation) string {
	var b strings.Builder
	for i, v := range violations {
		fmt.Fprintf(&b, "%d. [%s] %s: %s (%d elements)\n", i+1, v.Impact, v.ID, v.Help, len(v.Nodes))
		for _, n := range v.Nodes {
			fmt.Fprintf(&b, "     %s\n", strings.Join(n.Target, " "))
		}
	}
	return b.String()
}
