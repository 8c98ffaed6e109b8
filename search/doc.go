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

// Package search turns a committed query into a ranked, grouped result list.
//
// The Aggregator runs a tiered cascade over an index.Snapshot:
//   - an empty query returns the recently visited pages
//   - a direct object identifier is resolved through remote.ObjectLookup and,
//     when found, is the only result
//   - otherwise the fuzzy index and the help center are queried concurrently;
//     fuzzy hits are ranked by a blend of textual closeness and page
//     importance, help center articles follow in service order
//
// Failures from remote services never surface to callers. They are logged
// and the cascade continues with whatever sources succeeded.
//
// Group buckets a raw result list into at most MaxResultsPerGroup results
// per kind and orders the groups by kind priority.
package search
