package query

import (
	"regexp"
	"strings"
)

// Operator is a boolean connective.
type Operator int

const (
	And Operator = iota
	Or
	Not
)

func (o Operator) String() string {
	switch o {
	case And:
		return "AND"
	case Or:
		return "OR"
	case Not:
		return "NOT"
	default:
		return "UNKNOWN"
	}
}

// Kind tags a Token.
type Kind int

const (
	KindOperator Kind = iota
	KindTerm
	KindPhrase
)

// Token is one element of a parsed query. Text holds the term or phrase as
// written; Op is meaningful only for operator tokens.
type Token struct {
	Kind Kind
	Text string
	Op   Operator
}

func OperatorToken(op Operator) Token { return Token{Kind: KindOperator, Text: op.String(), Op: op} }
func TermToken(text string) Token     { return Token{Kind: KindTerm, Text: text} }
func PhraseToken(text string) Token   { return Token{Kind: KindPhrase, Text: text} }

var (
	phrasePattern   = regexp.MustCompile(`"([^"]*)"`)
	operatorPattern = regexp.MustCompile(`[\s\v\p{Z}]+(AND|OR|NOT)[\s\v\p{Z}]+`)
)

func operatorFor(s string) (Operator, bool) {
	switch s {
	case "AND":
		return And, true
	case "OR":
		return Or, true
	case "NOT":
		return Not, true
	}
	return 0, false
}

// extractPhrases returns the quoted phrases of raw and raw with every quoted
// occurrence removed.
func extractPhrases(raw string) ([]string, string) {
	var phrases []string
	for _, m := range phrasePattern.FindAllStringSubmatch(raw, -1) {
		phrases = append(phrases, m[1])
	}

	rest := raw
	for _, p := range phrases {
		rest = strings.ReplaceAll(rest, `"`+p+`"`, "")
	}
	return phrases, rest
}

// splitOperators cuts s around white-space-delimited operators, keeping the
// operators, trimming pieces and dropping empty ones.
func splitOperators(s string) []Token {
	var tokens []Token
	add := func(piece string) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			return
		}
		if op, ok := operatorFor(piece); ok {
			tokens = append(tokens, OperatorToken(op))
			return
		}
		tokens = append(tokens, TermToken(piece))
	}

	last := 0
	for _, loc := range operatorPattern.FindAllStringSubmatchIndex(s, -1) {
		add(s[last:loc[0]])
		add(s[loc[2]:loc[3]])
		last = loc[1]
	}
	add(s[last:])

	return tokens
}
