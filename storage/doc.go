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



// Package storage provides the storage abstraction layer for madde.
//
// The only persistent state in madde is a cache of converted documents:
// Markdown produced from HTML payloads and full documents fetched from disk.
// This package defines the DocumentCache interface that decouples the cache
// implementation from the retrieval layer, so different backends (BadgerDB
// on disk, BadgerDB in memory, test doubles) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage interface:
//
//	cache, err := badger.OpenCache(path, nil)  // returns storage.DocumentCache
//
// Internal helpers may return concrete types since they're only used within
// the implementation package.
//
// # Expiry
//
// Every entry is stored with an optional time-to-live. Expired entries are
// invisible to Get and Size immediately; Sweep removes them from storage and
// reports how many were evicted.
//
// # Usage
//
//	cache, err := badger.OpenCache("/path/to/cache", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cache.Close()
//
//	err = cache.Put(ctx, "html_md:42", markdown, time.Hour)
//	content, err := cache.Get(ctx, "html_md:42")
//
// Use in tests with in-memory storage:
//
//	cache, err := badger.NewMemoryCache()
//
// # Thread Safety
//
// All cache implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All cache methods accept context.Context for cancellation. Pass
// context.Background() for operations without specific timeout requirements.
package storage
