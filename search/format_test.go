package search

import (
	"testing"

	"github.com/poiesic/madde/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResults(t *testing.T) {
	result := &core.SearchResult{
		Query:        "tazmin",
		TotalMatches: 2,
		Matches: []*core.Match{
			{
				Article: core.Article{Number: "3", Title: "Mali sıkıntı", Body: "**MADDE 3 –** tazmin"},
				Score:   1,
			},
			{
				Article: core.Article{Number: "1", Body: "**MADDE 1 –** tazmin"},
				Score:   1,
			},
		},
	}

	want := "Keyword: 'tazmin'\n" +
		"Total matching articles: 2\n" +
		"\n" +
		"=== MADDE 3 ===\n" +
		"Title: Mali sıkıntı\n" +
		"Matches: 1\n" +
		"\n" +
		"Full content:\n" +
		"**MADDE 3 –** tazmin\n" +
		"\n" +
		"=== MADDE 1 ===\n" +
		"Matches: 1\n" +
		"\n" +
		"Full content:\n" +
		"**MADDE 1 –** tazmin\n"

	assert.Equal(t, want, FormatResults(result))
}

func TestFormatResults_NoMatches(t *testing.T) {
	result := &core.SearchResult{Query: "yok", Matches: []*core.Match{}}
	assert.Equal(t, "Keyword: 'yok'\nTotal matching articles: 0\n", FormatResults(result))
	assert.Equal(t, "", FormatResults(nil))
}

func TestFormatResults_WholeDocument(t *testing.T) {
	s := newTestSearcher(t, WithWholeDocumentFallback(true))
	result := s.Search(&Request{Document: "Bu metinde madde işareti yok, tazmin var.", Query: "tazmin"})
	require.Len(t, result.Matches, 1)

	report := FormatResults(result)
	assert.Contains(t, report, "=== DOCUMENT ===\n")
	assert.NotContains(t, report, "MADDE")
}
