package segment

import (
	"regexp"
	"strings"

	"github.com/poiesic/madde/core"
)

// ws matches any Unicode white space, including no-break spaces left behind by
// HTML conversion.
const ws = `[\s\v\p{Z}]`

var markerPattern = regexp.MustCompile(`\*\*(?:MADDE|Madde)` + ws + `+(\p{Nd}+)(?:` + ws + `*[–-])?\*\*` + ws + `*-?`)

// titleScanLines bounds how much of an article the title heuristic looks at.
const titleScanLines = 4

// Marker is one article boundary found in a document.
type Marker struct {
	Start  int    // Byte offset of the opening "**"
	End    int    // Byte offset just past the marker text
	Number string // Captured article number
}

// Markers returns every article marker in document, in source order.
func Markers(document string) []Marker {
	locs := markerPattern.FindAllStringSubmatchIndex(document, -1)
	if len(locs) == 0 {
		return nil
	}

	markers := make([]Marker, len(locs))
	for i, loc := range locs {
		markers[i] = Marker{
			Start:  loc[0],
			End:    loc[1],
			Number: document[loc[2]:loc[3]],
		}
	}
	return markers
}

// Split cuts document into articles. Bodies are contiguous, non-overlapping
// and unmodified, so concatenating them gives back the document from the
// first marker onwards. Returns an empty slice when no marker is present.
func Split(document string) []core.Article {
	markers := Markers(document)
	articles := make([]core.Article, 0, len(markers))

	for i, m := range markers {
		end := len(document)
		if i < len(markers)-1 {
			end = markers[i+1].Start
		}

		body := document[m.Start:end]
		articles = append(articles, core.Article{
			Number: m.Number,
			Title:  ExtractTitle(body),
			Body:   body,
		})
	}

	return articles
}

// ExtractTitle returns the article heading when the line after the marker is
// wrapped in bold delimiters, otherwise "". Best effort only.
func ExtractTitle(body string) string {
	lines := strings.SplitN(strings.TrimSpace(body), "\n", titleScanLines)
	if len(lines) < 2 {
		return ""
	}

	second := strings.TrimSpace(lines[1])
	if strings.HasPrefix(second, "**") && strings.HasSuffix(second, "**") {
		return strings.TrimSpace(strings.Trim(second, "*"))
	}
	return ""
}

// WholeDocument wraps an unstructured document as a single unnumbered article.
func WholeDocument(document string) core.Article {
	return core.Article{Body: document}
}
