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

// ValidateTree validates a navigation tree.
//
// Validation rules:
//   - Root must not be nil
//   - Every node must have a non-empty ID
//   - IDs must be unique across the tree
//   - TotalHits must not be negative
//
// A root without children is valid and yields no documents.
func ValidateTree(root *NavigationNode) error {
	if root == nil {
		return fmt.Errorf("%w: %w", ErrInvalidTree, ErrNilRoot)
	}
	seen := make(map[string]struct{})
	return validateNode(root, seen)
}

func validateNode(node *NavigationNode, seen map[string]struct{}) error {
	if node == nil {
		return nil
	}
	if node.ID == "" {
		return fmt.Errorf("%w: %w (label %q)", ErrInvalidTree, ErrEmptyNodeID, node.Label)
	}
	if _, dup := seen[node.ID]; dup {
		return fmt.Errorf("%w: %w: %s", ErrInvalidTree, ErrDuplicateNodeID, node.ID)
	}
	seen[node.ID] = struct{}{}
	if node.Visits.TotalHits < 0 {
		return fmt.Errorf("%w: %w: %s", ErrInvalidTree, ErrNegativeHits, node.ID)
	}
	for _, child := range node.Children {
		if err := validateNode(child, seen); err != nil {
			return err
		}
	}
	return nil
}
