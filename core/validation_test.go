package core

import (
	"errors"
	"testing"
)

func TestValidateTree(t *testing.T) {
	tests := []struct {
		name    string
		root    *NavigationNode
		wantErr error
	}{
		{
			name:    "nil root",
			root:    nil,
			wantErr: ErrNilRoot,
		},
		{
			name:    "root without children",
			root:    &NavigationNode{ID: "root"},
			wantErr: nil,
		},
		{
			name: "valid nested tree",
			root: &NavigationNode{ID: "root", Children: []*NavigationNode{
				{ID: "orders", Children: []*NavigationNode{{ID: "orders-history", URL: "/orders"}}},
			}},
			wantErr: nil,
		},
		{
			name: "empty child id",
			root: &NavigationNode{ID: "root", Children: []*NavigationNode{
				{Label: "Orders"},
			}},
			wantErr: ErrEmptyNodeID,
		},
		{
			name: "duplicate ids",
			root: &NavigationNode{ID: "root", Children: []*NavigationNode{
				{ID: "a"}, {ID: "b", Children: []*NavigationNode{{ID: "a"}}},
			}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "negative hits",
			root: &NavigationNode{ID: "root", Children: []*NavigationNode{
				{ID: "a", Visits: VisitStats{TotalHits: -1}},
			}},
			wantErr: ErrNegativeHits,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTree(tt.root)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTree() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTree() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidTree) {
				t.Errorf("ValidateTree() error should wrap ErrInvalidTree: %v", err)
			}
		})
	}
}
