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



package docsource

import "errors"

var (
	// ErrUnsupportedFormat indicates content this package cannot convert (PDF,
	// unknown file extensions).
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrInvalidPayload indicates a payload that is not valid base64.
	ErrInvalidPayload = errors.New("invalid base64 payload")

	// ErrEmptyDocument indicates that loading produced no text.
	ErrEmptyDocument = errors.New("document has no content")
)
