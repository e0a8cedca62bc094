// Package preprocess prepares noisy OCR text for pattern-based extraction.
package preprocess

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
	reMultiBlank = regexp.MustCompile(`\n\s*\n+`)
	reLoneMarks  = regexp.MustCompile(`(^|\s)[·*\-~](\s|$)`) // stray OCR symbols
)

// labelVariants de-spaces common Korean receipt labels so a single pattern
// form matches regardless of how the OCR split the glyphs.
var labelVariants = []struct {
	re  *regexp.Regexp
	out string
}{
	{regexp.MustCompile(`차\s*량\s*번\s*호`), "차량번호"},
	{regexp.MustCompile(`차\s*번\s*호`), "차량번호"},
	{regexp.MustCompile(`총\s*중\s*량`), "총중량"},
	{regexp.MustCompile(`공\s*차\s*중\s*량`), "공차중량"},
	{regexp.MustCompile(`차\s*중\s*량`), "차중량"},
	{regexp.MustCompile(`실\s*중\s*량`), "실중량"},
	{regexp.MustCompile(`계\s*량\s*일\s*자`), "계량일자"},
	{regexp.MustCompile(`거\s*래\s*처`), "거래처"},
	{regexp.MustCompile(`상\s*호`), "상호"},
	{regexp.MustCompile(`품\s*명`), "품명"},
	{regexp.MustCompile(`제\s*품\s*명`), "제품명"},
}

// Clean normalizes Unicode, collapses noisy whitespace and strips common OCR
// artifacts. Conservative: keeps line breaks; collapses blank-line runs.
func Clean(s string) string {
	if s == "" {
		return s
	}
	// NFKC folds fullwidth digits/colons and composed Hangul variants.
	s = norm.NFKC.String(s)
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n")
	s = reLoneMarks.ReplaceAllString(s, " ")
	s = reMultiSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// NormalizeLabels rewrites spaced-out Korean label variants to their compact
// canonical form (e.g. "총 중 량" -> "총중량").
func NormalizeLabels(s string) string {
	for _, lv := range labelVariants {
		s = lv.re.ReplaceAllString(s, lv.out)
	}
	return s
}
