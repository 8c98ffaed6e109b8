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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTree indicates a navigation tree failed validation.
	ErrInvalidTree = errors.New("invalid navigation tree")

	// ErrNilRoot indicates the tree root is nil.
	ErrNilRoot = errors.New("root node cannot be nil")

	// ErrEmptyNodeID indicates a node without an identifier.
	ErrEmptyNodeID = errors.New("node id cannot be empty")

	// ErrDuplicateNodeID indicates two nodes share an identifier.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrNegativeHits indicates a negative visit counter.
	ErrNegativeHits = errors.New("total hits cannot be negative")

	// ErrUnknownResultKind indicates a kind name outside the closed set.
	ErrUnknownResultKind = errors.New("unknown result kind")
)
