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

package remote

import "errors"

var (
	// ErrInvalidMaxAttempts is returned when maxAttempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrProviderRequired is returned when a provider is not supplied.
	ErrProviderRequired = errors.New("remote provider required")

	// ErrConfigRequired is returned when a nil config is supplied.
	ErrConfigRequired = errors.New("remote config required")

	// ErrUnexpectedStatus is returned for non-success HTTP responses.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
