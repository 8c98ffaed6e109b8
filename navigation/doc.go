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

// Package navigation turns a navigation tree into weighted searchable documents.
//
// All functions are pure: they read the tree and never modify it. Derived
// values are recomputed whenever the caller supplies a new tree.
//
// The pipeline is:
//   - Flatten: leaves of the tree with their ancestor chain
//   - Weigh: global frequency/recency normalization into WeightedDocuments
//   - MostRecentlyVisited / FrequentlyVisited: query-independent fallbacks
package navigation
