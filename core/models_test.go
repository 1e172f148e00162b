package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "<p><b>MADDE 1 –</b> Amaç</p>",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "turkish content",
			content:  "Bu Kanunun amacı, yatırımcıların haklarını korumaktır.",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestMatch_EmbedsArticle(t *testing.T) {
	m := Match{
		Article: Article{Number: "5", Title: "Tanımlar", Body: "**MADDE 5 –** ..."},
		Score:   3,
	}

	if m.Number != "5" || m.Title != "Tanımlar" {
		t.Errorf("Match fields not promoted from Article: %+v", m)
	}
}
