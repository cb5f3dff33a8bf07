package cli

import (
	"testing"

	"github.com/mindgrove/mindgrove/pkg/tree"
)

func TestPathTo(t *testing.T) {
	root := &tree.Node{ID: "r", Label: "Project", Children: []*tree.Node{
		{ID: "a", Label: "Backend", Children: []*tree.Node{
			{ID: "a1", Label: "Database"},
		}},
		{ID: "b", Label: "Frontend"},
	}}

	tests := []struct {
		name string
		id   string
		want []string
	}{
		{"root has no trail", "r", nil},
		{"first level", "a", []string{"Project"}},
		{"second level", "a1", []string{"Project", "Backend"}},
		{"sibling branch", "b", []string{"Project"}},
		{"unknown id", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pathTo(root, tt.id)
			if len(got) != len(tt.want) {
				t.Fatalf("pathTo(%q) = %v, want %v", tt.id, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("pathTo(%q)[%d] = %q, want %q", tt.id, i, got[i], tt.want[i])
				}
			}
		})
	}
}
