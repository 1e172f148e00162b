package query

import "strings"

// Query is a parsed query. Tokens holds the phrases first, in the order they
// were written, followed by the operator/term stream.
type Query struct {
	Raw    string
	Tokens []Token
}

// Parse tokenises raw. Parsing never fails; malformed input degrades to
// literal terms.
func Parse(raw string) *Query {
	phrases, rest := extractPhrases(raw)

	tokens := make([]Token, 0, len(phrases))
	for _, p := range phrases {
		tokens = append(tokens, PhraseToken(p))
	}
	tokens = append(tokens, splitOperators(rest)...)

	return &Query{Raw: raw, Tokens: tokens}
}

// Phrases returns the quoted phrases of the query.
func (q *Query) Phrases() []string {
	var out []string
	for _, t := range q.Tokens {
		if t.Kind == KindPhrase {
			out = append(out, t.Text)
		}
	}
	return out
}

// Terms returns the bare terms of the query in source order.
func (q *Query) Terms() []string {
	var out []string
	for _, t := range q.Tokens {
		if t.Kind == KindTerm {
			out = append(out, t.Text)
		}
	}
	return out
}

// PreviewTerm picks the text a preview should be centred on: the first
// phrase, else the first bare term.
func (q *Query) PreviewTerm() (string, bool) {
	if phrases := q.Phrases(); len(phrases) > 0 {
		return phrases[0], true
	}
	if terms := q.Terms(); len(terms) > 0 {
		return terms[0], true
	}
	return "", false
}

// Fold applies the case policy used for all comparisons.
func Fold(s string, caseSensitive bool) string {
	if caseSensitive {
		return s
	}
	return strings.ToLower(s)
}
