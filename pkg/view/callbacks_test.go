package view

import "testing"

func TestDispatch(t *testing.T) {
	var got string
	cb := Callbacks{
		OnExpandRequested:   func(id string) { got = "expand:" + id },
		OnAddChildRequested: func(id string) { got = "add:" + id },
		OnEditRequested:     func(id string) { got = "edit:" + id },
		OnDeleteRequested:   func(id string) { got = "delete:" + id },
	}

	tests := []struct {
		hit       Hit
		secondary bool
		want      string
	}{
		{Hit{Kind: HitExpand, NodeID: "n"}, false, "expand:n"},
		{Hit{Kind: HitAddChild, NodeID: "n"}, false, "add:n"},
		{Hit{Kind: HitBody, NodeID: "n"}, false, "edit:n"},
		{Hit{Kind: HitBody, NodeID: "n"}, true, "delete:n"},
		{Hit{Kind: HitBackground}, false, ""},
	}
	for _, tt := range tests {
		got = ""
		cb.Dispatch(tt.hit, tt.secondary)
		if got != tt.want {
			t.Errorf("Dispatch(%+v, %v) = %q, want %q", tt.hit, tt.secondary, got, tt.want)
		}
	}
}

func TestDispatchNilCallbacks(t *testing.T) {
	var cb Callbacks
	// Must not panic.
	cb.Dispatch(Hit{Kind: HitExpand, NodeID: "n"}, false)
	cb.Dispatch(Hit{Kind: HitBody, NodeID: "n"}, true)
}
