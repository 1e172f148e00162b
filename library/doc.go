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



// Package library holds a set of legislation documents and searches them
// together.
//
// Documents are loaded through a docsource.Converter and searched with a
// search.Searcher. Loading and searching fan out over an ants worker pool;
// results always come back in load order regardless of which worker
// finished first.
//
// # Usage
//
//	lib, err := library.NewLibrary(converter, searcher, library.WithPoolSize(4))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer lib.Release()
//
//	if _, err := lib.LoadDir(ctx, "./mevzuat"); err != nil {
//	    log.Printf("some documents failed to load: %v", err)
//	}
//	results, err := lib.SearchAll(ctx, `"mali sıkıntı" AND tazmin`, false, 10)
package library
