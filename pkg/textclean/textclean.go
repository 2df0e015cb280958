// Package textclean strips markup from scraped page text and cuts it to size
// before it goes into a prompt.
package textclean

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	imageRe       = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe        = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	codeBlockRe   = regexp.MustCompile("```[^`]*```")
	inlineCodeRe  = regexp.MustCompile("`([^`]+)`")
	underscoresRe = regexp.MustCompile(`_{2,}`)
	asterisksRe   = regexp.MustCompile(`\*{2,}`)
	headerRe      = regexp.MustCompile(`#{1,6}\s`)
	spaceRe       = regexp.MustCompile(`\s+`)
	shareTailRe   = regexp.MustCompile(`(?i)(Share|Tweet|Pin|Email|Print)\s*$`)
	boilerplateRe = regexp.MustCompile(`(?i)(Cookie|Privacy Policy|Terms of Service|Subscribe|Newsletter)`)
	leadingRe     = regexp.MustCompile(`^[_\-*\s]+`)
	trailingRe    = regexp.MustCompile(`[_\-*\s]+$`)
)

// CleanHTML decodes entities, drops tags and markdown, and collapses whitespace
func CleanHTML(text string) string {
	if text == "" {
		return ""
	}

	text = html.UnescapeString(text)
	text = tagRe.ReplaceAllString(text, " ")

	text = imageRe.ReplaceAllString(text, "")
	text = linkRe.ReplaceAllString(text, "$1")
	text = codeBlockRe.ReplaceAllString(text, "")
	text = inlineCodeRe.ReplaceAllString(text, "$1")

	text = underscoresRe.ReplaceAllString(text, "")
	text = asterisksRe.ReplaceAllString(text, "")
	text = headerRe.ReplaceAllString(text, "")

	text = spaceRe.ReplaceAllString(text, " ")

	text = shareTailRe.ReplaceAllString(text, "")
	text = boilerplateRe.ReplaceAllString(text, "")
	text = spaceRe.ReplaceAllString(text, " ")

	text = strings.TrimSpace(text)
	text = leadingRe.ReplaceAllString(text, "")
	text = trailingRe.ReplaceAllString(text, "")
	return text
}

// TruncateSmart cuts text to at most maxLen characters, preferring a sentence
// boundary in the second half; otherwise it cuts at a word and appends "...".
// Text already within maxLen is returned untouched.
func TruncateSmart(text string, maxLen int) string {
	if text == "" || len([]rune(text)) <= maxLen {
		return text
	}

	runes := []rune(CleanHTML(text))
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	truncated := string(runes)

	boundary := -1
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' {
			boundary = i
		}
	}
	if float64(boundary) > float64(maxLen)*0.5 {
		return strings.TrimSpace(string(runes[:boundary+1]))
	}

	if i := strings.LastIndex(truncated, " "); i >= 0 {
		truncated = truncated[:i]
	}
	return truncated + "..."
}

// CleanSentences returns up to maxSentences complete sentences of at least 20 characters
func CleanSentences(text string, maxSentences int) string {
	if text == "" {
		return ""
	}

	var valid []string
	for _, s := range splitSentences(CleanHTML(text)) {
		s = strings.TrimSpace(s)
		if len(s) >= 20 && endsSentence(s) {
			valid = append(valid, s)
		}
		if len(valid) >= maxSentences {
			break
		}
	}
	return strings.Join(valid, " ")
}

// Truncate cuts s to n runes without looking for boundaries
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i + 1
		if j < len(runes) && runes[j] != ' ' && runes[j] != '\n' && runes[j] != '\t' {
			continue
		}
		out = append(out, string(runes[start:j]))
		for j < len(runes) && (runes[j] == ' ' || runes[j] == '\n' || runes[j] == '\t') {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		out = append(out, string(runes[start:]))
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func endsSentence(s string) bool {
	return isTerminal(rune(s[len(s)-1]))
}
