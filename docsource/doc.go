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



// Package docsource turns raw legislation content into Markdown documents
// that the search core can segment.
//
// Content arrives either as local files (.md, .markdown, .txt, .html, .htm)
// or as base64 payloads holding HTML. HTML is sanitised with bluemonday and
// converted with html-to-markdown so that bold article markers survive as
// "**MADDE n –**". PDF payloads are detected and rejected with
// ErrUnsupportedFormat.
//
// # Caching
//
// A Converter may be given a storage.DocumentCache. Converted HTML is cached
// under "html_md:<content id>" and fully loaded payload documents under
// "full_doc:<document id>", both with the configured TTL. Without a cache
// every call converts from scratch.
package docsource
