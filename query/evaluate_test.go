package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const body = "**MADDE 1 –** (1) Bu Kanunun amacı, yatırımcı haklarını korumak ve " +
	"yatırımcı tazmin merkezinin mali sıkıntı içindeki kuruluşlara ilişkin işlemlerini düzenlemektir."

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		query     string
		wantMatch bool
		wantScore int
	}{
		{
			name:      "single term counts occurrences",
			body:      body,
			query:     "yatırımcı",
			wantMatch: true,
			wantScore: 2,
		},
		{
			name:      "and sums both counts",
			body:      body,
			query:     "yatırımcı AND tazmin",
			wantMatch: true,
			wantScore: 3,
		},
		{
			name:      "and with missing second term",
			body:      body,
			query:     "yatırımcı AND borsa",
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "and with missing first term",
			body:      body,
			query:     "borsa AND yatırımcı",
			wantMatch: false,
		},
		{
			name:      "or with one side present",
			body:      body,
			query:     "borsa OR tazmin",
			wantMatch: true,
			wantScore: 1,
		},
		{
			name:      "or accumulates every found branch",
			body:      body,
			query:     "yatırımcı OR tazmin",
			wantMatch: true,
			wantScore: 3,
		},
		{
			name:      "or with nothing present",
			body:      body,
			query:     "borsa OR halka",
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "not excludes present term",
			body:      body,
			query:     "yatırımcı NOT tazmin",
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "not with absent term",
			body:      body,
			query:     "yatırımcı NOT borsa",
			wantMatch: true,
			wantScore: 2,
		},
		{
			name:      "phrase weighs double",
			body:      body,
			query:     `"mali sıkıntı"`,
			wantMatch: true,
			wantScore: 2,
		},
		{
			name:      "phrase is exact substring",
			body:      "mali durum ve sıkıntı ayrı yerlerde geçer",
			query:     `"mali sıkıntı"`,
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "missing phrase vetoes or",
			body:      body,
			query:     `"halka arz" OR yatırımcı`,
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "phrase and terms combined",
			body:      body,
			query:     `"mali sıkıntı" AND yatırımcı NOT kurum`,
			wantMatch: true,
			wantScore: 4,
		},
		{
			name:      "operator words inside phrase are literal",
			body:      "kar AND zarar hesabı",
			query:     `"kar AND zarar"`,
			wantMatch: true,
			wantScore: 2,
		},
		{
			name:      "left fold without precedence",
			body:      "alpha gamma",
			query:     "alpha OR beta AND gamma",
			wantMatch: true,
			wantScore: 2,
		},
		{
			name:      "left fold fails on trailing and",
			body:      "alpha",
			query:     "alpha OR beta AND gamma",
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "default case folding",
			body:      "YATIRIMCI Tazmin",
			query:     "tazmin",
			wantMatch: true,
			wantScore: 1,
		},
		{
			name:      "empty query never matches",
			body:      body,
			query:     "",
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "operator-only query never matches",
			body:      body,
			query:     "AND",
			wantMatch: false,
			wantScore: 0,
		},
		{
			name:      "unbalanced quote degrades to term",
			body:      `madde "mali sıkıntı halinde`,
			query:     `"mali sıkıntı`,
			wantMatch: true,
			wantScore: 1,
		},
		{
			name:      "non-overlapping counts",
			body:      "aaaa",
			query:     "aa",
			wantMatch: true,
			wantScore: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched, score := Match(tt.body, tt.query, false)
			assert.Equal(t, tt.wantMatch, matched)
			assert.Equal(t, tt.wantScore, score)
		})
	}
}

func TestEvaluate_CaseSensitive(t *testing.T) {
	text := "Sermaye Piyasası Kurulu"

	matched, score := Match(text, "sermaye piyasası", false)
	assert.True(t, matched)
	assert.Equal(t, 1, score)

	matched, score = Match(text, "sermaye piyasası", true)
	assert.False(t, matched)
	assert.Zero(t, score)

	matched, _ = Match(text, "Sermaye", true)
	assert.True(t, matched)

	matched, _ = Match(text, `"piyasası kurulu"`, true)
	assert.False(t, matched)
}

func TestEvaluate_FailedAndKeepsRawScore(t *testing.T) {
	// A false first term followed by a found AND term leaves result false but
	// the score is still accumulated; Matched must reject it.
	o := Evaluate("beta beta", Parse("alpha AND beta"), false)
	assert.False(t, o.Result)
	assert.Equal(t, 2, o.Score)
	assert.False(t, o.Matched())
}

func TestEvaluate_NilQuery(t *testing.T) {
	assert.Equal(t, Outcome{}, Evaluate(body, nil, false))
}

func TestEvaluate_EmptyPhrase(t *testing.T) {
	// An empty phrase is contained everywhere; it counts once per gap between
	// characters, including both ends.
	o := Evaluate("abc", Parse(`""`), false)
	assert.True(t, o.Matched())
	assert.Equal(t, 8, o.Score)
}
