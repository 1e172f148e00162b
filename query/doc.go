// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package query implements the boolean keyword language used to match
// articles.
//
// Syntax:
//
//	yatırımcı                    bare term, substring match
//	"mali sıkıntı"               exact phrase, always required
//	yatırımcı AND tazmin         both terms
//	yatırımcı OR müşteri         at least one term
//	yatırımcı NOT kurum          first term without the second
//
// Operators are recognised only in upper case and only when surrounded by
// white space. Quoted phrases are removed from the query before operators
// are split out, so AND/OR/NOT inside quotes stay literal. An unbalanced
// quote is not a phrase delimiter and falls through to term matching.
//
// # Evaluation
//
// Phrases are checked first: a missing phrase rejects the article outright,
// and each present phrase adds twice its occurrence count to the score.
// The remaining tokens are then folded strictly left to right with the most
// recent operator (AND before the first operator). There is no precedence:
// "a OR b AND c" is ((a OR b) AND c), never (a OR (b AND c)). This mirrors
// the behaviour legislation users already rely on and is kept deliberately.
//
// A failed AND term after the first term and any NOT term that is present
// end evaluation immediately with no match. OR accumulates the counts of
// every term it finds. NOT never contributes to the score.
//
// An article matches when the folded result is true and the score is
// positive. An empty or operator-only query never matches.
package query
