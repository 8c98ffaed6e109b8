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

// Package index provides the weighted fuzzy index over navigation documents
// and the immutable per-tree Snapshot shared by concurrent search cycles.
//
// Scores follow the usual fuzzy-search convention: 0 is a perfect match and
// 1 is no match. A document's score combines the distances of every matched
// field, each raised to its field weight, so strong matches in heavily
// weighted fields dominate.
//
// An index is never patched. Replacing the navigation tree means building a
// new Snapshot.
package index
