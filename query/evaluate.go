package query

import "strings"

// Outcome is the result of evaluating a query against one text.
type Outcome struct {
	Result bool
	Score  int
}

// Matched reports whether the text satisfies the query with a positive score.
func (o Outcome) Matched() bool {
	return o.Result && o.Score > 0
}

var noMatch = Outcome{}

// Evaluate folds q over body. Terminal failures (missing phrase, failed AND,
// present NOT term) return a zero Outcome.
func Evaluate(body string, q *Query, caseSensitive bool) Outcome {
	if q == nil {
		return noMatch
	}

	content := Fold(body, caseSensitive)

	var (
		result bool
		set    bool
		score  int
		op     = And
	)

	for _, tok := range q.Tokens {
		switch tok.Kind {
		case KindOperator:
			op = tok.Op

		case KindPhrase:
			phrase := Fold(tok.Text, caseSensitive)
			if !strings.Contains(content, phrase) {
				return noMatch
			}
			score += 2 * strings.Count(content, phrase)
			if !set {
				result, set = true, true
			}

		case KindTerm:
			term := Fold(tok.Text, caseSensitive)
			count := strings.Count(content, term)
			found := count > 0

			switch op {
			case And:
				if !set {
					result, set = found, true
					score += count
					continue
				}
				if !found {
					return noMatch
				}
				score += count

			case Or:
				if !set {
					result, set = found, true
				} else {
					result = result || found
				}
				score += count

			case Not:
				if found {
					return noMatch
				}
			}
		}
	}

	return Outcome{Result: result, Score: score}
}

// Match parses raw and evaluates it against body. The score is 0 whenever
// the text does not match.
func Match(body, raw string, caseSensitive bool) (bool, int) {
	o := Evaluate(body, Parse(raw), caseSensitive)
	if !o.Matched() {
		return false, 0
	}
	return true, o.Score
}
