// Package locator maps semantic UI concepts ("profile.saveButton") to element
// queries. The mapping lives in an embedded YAML catalog so wording and
// selector changes in the webshop are edited in one place.
package locator

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Concept names one UI element or element set
type Concept string

// Step narrows the elements matched by the previous step. The first step is
// evaluated against the whole page, every following step against the
// descendants of the previous match.
type Step struct {
	CSS string `yaml:"css"`
	// Text is a case-sensitive substring the matched element's text must contain
	Text string `yaml:"text"`
	// Has keeps only elements with a descendant matching it; this is how
	// "the section whose heading says X" is expressed
	Has *Step `yaml:"has"`
	// Attr and AttrContains filter on an attribute substring
	Attr         string `yaml:"attr"`
	AttrContains string `yaml:"attrContains"`
	// Nth picks one element of the match set, counted from zero
	Nth *int `yaml:"nth"`
}

// Query is a resolved concept, ready to be handed to the browser
type Query struct {
	Concept Concept
	Steps   []Step
}

// Selector renders the query as a Playwright selector chain
func (q Query) Selector() string {
	parts := make([]string, 0, len(q.Steps))
	for _, s := range q.Steps {
		parts = append(parts, s.selector())
		if s.Nth != nil {
			parts = append(parts, "nth="+strconv.Itoa(*s.Nth))
		}
	}
	return strings.Join(parts, " >> ")
}

// String names the concept for error messages
func (q Query) String() string {
	return string(q.Concept)
}

func (s Step) selector() string {
	var b strings.Builder
	css := s.CSS
	if css == "" {
		css = "*"
	}
	b.WriteString(css)
	if s.Attr != "" {
		fmt.Fprintf(&b, "[%s*=%s]", s.Attr, strconv.Quote(s.AttrContains))
	}
	if s.Has != nil {
		b.WriteString(" >> internal:has=")
		b.WriteString(quoteSelector(s.Has.selector()))
	}
	if s.Text != "" {
		b.WriteString(" >> internal:has-text=")
		b.WriteString(textPattern(s.Text))
	}
	return b.String()
}

var selectorQuotes = regexp.MustCompile("[\"'`]")

// textPattern renders text as a case-sensitive substring regular expression
// in Playwright selector syntax
func textPattern(text string) string {
	pattern := selectorQuotes.ReplaceAllString(regexp.QuoteMeta(text), `\$0`)
	return "/" + strings.ReplaceAll(pattern, ">>", `\>\>`) + "/"
}

func quoteSelector(sel string) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(sel)
	return strings.TrimSpace(b.String())
}

func (s Step) substitute(params Params) (Step, error) {
	var err error
	out := s
	if out.CSS, err = params.expand(s.CSS); err != nil {
		return Step{}, err
	}
	if out.Text, err = params.expand(s.Text); err != nil {
		return Step{}, err
	}
	if out.AttrContains, err = params.expand(s.AttrContains); err != nil {
		return Step{}, err
	}
	if s.Has != nil {
		has, err := s.Has.substitute(params)
		if err != nil {
			return Step{}, err
		}
		out.Has = &has
	}
	return out, nil
}

func (s Step) validate() error {
	if s.CSS == "" && s.Text == "" {
		return fmt.Errorf("step needs css or text")
	}
	if strings.Contains(s.CSS, ",") {
		return fmt.Errorf("selector lists are not supported: %q", s.CSS)
	}
	if (s.Attr == "") != (s.AttrContains == "") {
		return fmt.Errorf("attr and attrContains must be set together")
	}
	if s.Nth != nil && *s.Nth < 0 {
		return fmt.Errorf("nth must not be negative")
	}
	if s.Has != nil {
		return s.Has.validate()
	}
	return nil
}
