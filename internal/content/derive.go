package content

import (
	"strings"

	"github.com/ignatij/folio/internal/models"
)

// ExcerptLength is the maximum excerpt length in runes, ellipsis excluded.
const ExcerptLength = 200

// WordsPerMinute drives the read time estimate.
const WordsPerMinute = 200

// Excerpt returns the authored excerpt when present. Otherwise it takes the
// first non-blank line that is not a heading, or the whole body when there is
// none, and truncates it to ExcerptLength runes with a trailing "...".
func Excerpt(authored, body string) string {
	if s := strings.TrimSpace(authored); s != "" {
		return s
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return truncate(line, ExcerptLength)
	}
	return truncate(strings.TrimSpace(body), ExcerptLength)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimRight(string(runes[:n]), " \t") + "..."
}

// EstimateReadTime rounds words/WordsPerMinute up, with a one minute floor.
func EstimateReadTime(source string) models.ReadTime {
	words := len(strings.Fields(source))
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return models.ReadTime(minutes)
}
