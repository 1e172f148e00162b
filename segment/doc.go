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


// Package segment splits legislation text into articles ("madde").
//
// An article starts at a bold marker of the form
//
//	**MADDE 1 –**   dash inside the bold delimiters (laws)
//	**MADDE 1**-    dash outside the bold delimiters (regulations)
//	**Madde 1 –**   title-case variant (e.g. the Code of Criminal Procedure)
//
// Only the spellings "MADDE" and "Madde" are recognised. The digits after the
// keyword become the article number. An article's body runs from its marker
// to the next marker, or to the end of the document for the last one. Text
// before the first marker (the preamble) belongs to no article.
//
// A document without markers yields no articles. That is a normal outcome:
// callers that still want to search such a document can wrap it with
// WholeDocument.
//
// Everything in this package is pure and safe for concurrent use.
package segment
