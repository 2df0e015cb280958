package textclean

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tags and entities", "<p>Fish &amp; chips</p>", "Fish & chips"},
		{"markdown link", "See [the docs](https://x.io) now", "See the docs now"},
		{"image removed", "Logo ![alt](https://x.io/a.png) here", "Logo here"},
		{"bold and headers", "## Title\n**Bold** text", "Title Bold text"},
		{"inline code", "run `make build` first", "run make build first"},
		{"share tail", "Great article Share", "Great article"},
		{"boilerplate", "Read our Privacy Policy today", "Read our today"},
		{"leading artifacts", "--- * Hello", "Hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanHTML(tt.in))
		})
	}
}

func TestTruncateSmart(t *testing.T) {
	t.Run("short text untouched", func(t *testing.T) {
		assert.Equal(t, "<b>short</b>", TruncateSmart("<b>short</b>", 100))
	})

	t.Run("cuts at sentence in second half", func(t *testing.T) {
		text := "First sentence is here. Second sentence is also here. Third one trails on and on"
		got := TruncateSmart(text, 60)
		assert.Equal(t, "First sentence is here. Second sentence is also here.", got)
	})

	t.Run("falls back to word boundary", func(t *testing.T) {
		text := strings.Repeat("word ", 40)
		got := TruncateSmart(text, 23)
		assert.Equal(t, "word word word word...", got)
	})
}

func TestCleanSentences(t *testing.T) {
	text := "Short. This sentence is long enough to count. Another complete sentence is right here! Tail without end"
	assert.Equal(t,
		"This sentence is long enough to count. Another complete sentence is right here!",
		CleanSentences(text, 5))
	assert.Equal(t, "This sentence is long enough to count.", CleanSentences(text, 1))
	assert.Equal(t, "", CleanSentences("", 3))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héll", Truncate("héllo", 4))
	assert.Equal(t, "abc", Truncate("abc", 10))
}
