package ocr

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Replacement rewrites OCR output. From is a regular expression; To may
// reference its groups with $1 or ${name}.
type Replacement struct {
	From string `yaml:"from" json:"from"`
	To   string `yaml:"to" json:"to"`
}

// Rule is a compiled Replacement.
type Rule struct {
	re *regexp.Regexp
	to string
}

// CompileRules compiles replacements in order. The first invalid pattern
// aborts compilation.
func CompileRules(reps []Replacement) ([]Rule, error) {
	rules := make([]Rule, 0, len(reps))
	for i, r := range reps {
		re, err := regexp.Compile(r.From)
		if err != nil {
			return nil, fmt.Errorf("replacement %d (%q): %w", i, r.From, err)
		}
		rules = append(rules, Rule{re: re, to: r.To})
	}
	return rules, nil
}

// PostOptions controls PostProcess.
type PostOptions struct {
	Language       string
	KeepLineBreaks bool
	Rules          []Rule
}

// PostProcess cleans raw Tesseract output.
//
// Unless KeepLineBreaks is set, line breaks are dropped for Japanese and
// Chinese and replaced by a space for every other language. The text is then
// trimmed, normalized to NFC and run through Rules in order.
func PostProcess(text string, opts PostOptions) string {
	if !opts.KeepLineBreaks {
		if IsCJK(opts.Language) {
			text = strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(text)
		} else {
			text = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text)
		}
	}

	text = norm.NFC.String(strings.TrimSpace(text))

	for _, r := range opts.Rules {
		text = r.re.ReplaceAllString(text, r.to)
	}
	return text
}
