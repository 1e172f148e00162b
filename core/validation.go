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


package core

import "fmt"

// ValidateDocument validates a Document before it is handed to a searcher.
//
// Validation rules:
//   - ID must not be empty
//   - Content must not be empty
//
// Title and Source are informational and never validated.
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentID)
	}

	if doc.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyContent)
	}

	return nil
}

// ValidateMaxResults checks a caller-supplied result limit.
// Only boundary layers (CLI, tool dispatch, config) call this.
func ValidateMaxResults(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidMaxResults, n)
	}
	return nil
}
