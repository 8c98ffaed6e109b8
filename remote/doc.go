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

// Package remote defines the external services consulted by the search
// aggregator.
//
// Two collaborators exist:
//   - ObjectLookup resolves a direct object identifier to a single entity
//   - FAQSearcher searches the help center for articles
//
// A Provider groups both so that they share configuration and lifecycle.
// Subpackages provide implementations:
//   - remote/httpapi talks to the real services over HTTP
//   - remote/mock provides test doubles
//
// NewCachedProvider wraps any Provider with LRU caches so repeated keystroke
// states do not hit the network twice.
package remote
