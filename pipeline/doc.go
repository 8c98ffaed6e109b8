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

// Package pipeline connects keystrokes to published search results.
//
// A Pipeline owns a query.Normalizer, the current index.Snapshot and a
// worker pool. Every committed query change and every tree replacement
// launches a search cycle on the pool. Cycles are tagged with a token from a
// monotonic counter when they launch, and a finished cycle is published only
// if its token is still the newest one issued. Older cycles finish their
// remote calls but their results are dropped.
//
// Subscribers receive every published Publication in publish order.
package pipeline
