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


// Package search finds the articles of a legislation document that satisfy
// a keyword query.
//
// A search segments the document into articles, evaluates the query against
// each article body, keeps the matches with a positive score, sorts them by
// descending score (articles with equal scores keep document order) and
// truncates the list to the requested size. Each match carries a preview
// snippet centred on the first phrase or term of the query.
//
// The Searcher type adds logging, a configurable default result limit, an
// optional whole-document fallback for documents without article markers,
// and SearchMonitor hooks to observe each stage. SearchArticles is the plain
// function form with no fallback.
//
// Searching performs no I/O and keeps no state between calls, so a Searcher
// may be shared by any number of goroutines.
package search
