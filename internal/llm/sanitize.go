package llm

import (
	"regexp"
	"strings"
)

// maxFreeTextLen bounds user-contributed text embedded into prompts.
const maxFreeTextLen = 500

// instruction-override phrases stripped from user text before it reaches a
// prompt. Matching is case-insensitive.
var overridePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?previous(\s+instructions)?`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)\bsystem\s*:`),
	regexp.MustCompile(`(?i)\bassistant\s*:`),
	regexp.MustCompile(`(?i)new\s+instructions\s*:`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// SanitizeFreeText strips instruction-override phrases from user-contributed
// text and truncates it, so that task titles or notes cannot redirect the
// model when embedded in a prompt.
func SanitizeFreeText(s string) string {
	for _, p := range overridePatterns {
		s = p.ReplaceAllString(s, "")
	}
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if len(s) > maxFreeTextLen {
		s = s[:maxFreeTextLen]
	}
	return s
}
