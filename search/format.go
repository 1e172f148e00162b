package search

import (
	"fmt"
	"strings"

	"github.com/poiesic/madde/core"
)

// FormatResults renders a search result as a plain-text report.
func FormatResults(result *core.SearchResult) string {
	if result == nil {
		return ""
	}

	output := []string{
		fmt.Sprintf("Keyword: '%s'", result.Query),
		fmt.Sprintf("Total matching articles: %d", result.TotalMatches),
		"",
	}

	for _, match := range result.Matches {
		output = append(output, header(match.Number))
		if match.Title != "" {
			output = append(output, fmt.Sprintf("Title: %s", match.Title))
		}
		output = append(output,
			fmt.Sprintf("Matches: %d", match.Score),
			"",
			"Full content:",
			match.Body,
			"",
		)
	}

	return strings.Join(output, "\n")
}

// header labels a match; the whole-document unit has no article number.
func header(number string) string {
	if number == "" {
		return "=== DOCUMENT ==="
	}
	return fmt.Sprintf("=== MADDE %s ===", number)
}
