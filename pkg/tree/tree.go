// Package tree defines the logical mind-map tree and its functional update
// operations.
//
// A tree is a hierarchy of [Node] values owned by the caller. All mutation
// helpers in this package are copy-on-write: they return a new tree sharing
// unchanged subtrees with the input and never modify the input in place. This
// gives the layout engine the immutable-per-pass snapshot contract it relies
// on: a snapshot handed to layout can never change underneath it.
//
// Node IDs must be unique across the whole tree and stable across mutations.
// The engine tolerates duplicate IDs (see pkg/scene), but producing them is a
// caller bug; [Validate] reports any duplicates.
package tree

import (
	"github.com/google/uuid"

	"github.com/mindgrove/mindgrove/pkg/errors"
)

// Node is one node of the logical mind-map tree.
//
// Children order is meaningful: it determines left-to-right placement at the
// first level and top-to-bottom placement below it. Busy marks an in-flight
// asynchronous operation (typically an expand request); the engine only reads
// it, an external collaborator toggles it.
type Node struct {
	ID       string  `json:"id" bson:"id"`
	Label    string  `json:"label,omitempty" bson:"label,omitempty"`
	Busy     bool    `json:"busy,omitempty" bson:"busy,omitempty"`
	Children []*Node `json:"children,omitempty" bson:"children,omitempty"`
}

// NewID returns a fresh caller-unique node ID.
func NewID() string { return uuid.NewString() }

// New creates a node with a fresh ID and the given label.
func New(label string) *Node {
	return &Node{ID: NewID(), Label: label}
}

// Clone returns a deep copy of the subtree rooted at n.
// Clone of nil is nil.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{ID: n.ID, Label: n.Label, Busy: n.Busy}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// Walk visits the subtree rooted at n in depth-first pre-order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Find returns the first node with the given ID in pre-order, or nil.
func Find(root *Node, id string) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree rooted at n.
func Count(n *Node) int {
	total := 0
	n.Walk(func(*Node) bool { total++; return true })
	return total
}

// Validate checks the caller contract and returns the IDs that appear more
// than once, in first-encounter pre-order. An empty result means the tree is
// well formed.
func Validate(root *Node) []string {
	seen := make(map[string]int)
	var dups []string
	root.Walk(func(n *Node) bool {
		seen[n.ID]++
		if seen[n.ID] == 2 {
			dups = append(dups, n.ID)
		}
		return true
	})
	return dups
}

// Insert returns a new tree with child appended to the children of parentID.
// The input tree is not modified.
func Insert(root *Node, parentID string, child *Node) (*Node, error) {
	out, found := rewrite(root, parentID, func(n *Node) *Node {
		n.Children = append(n.Children, child)
		return n
	})
	if !found {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", parentID)
	}
	return out, nil
}

// Rename returns a new tree with the label of id replaced.
func Rename(root *Node, id, label string) (*Node, error) {
	out, found := rewrite(root, id, func(n *Node) *Node {
		n.Label = label
		return n
	})
	if !found {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	return out, nil
}

// SetBusy returns a new tree with the Busy flag of id set to busy.
func SetBusy(root *Node, id string, busy bool) (*Node, error) {
	out, found := rewrite(root, id, func(n *Node) *Node {
		n.Busy = busy
		return n
	})
	if !found {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	return out, nil
}

// Replace returns a new tree with the subtree at id swapped for sub.
// Replacing the root ID returns sub itself.
func Replace(root *Node, id string, sub *Node) (*Node, error) {
	if root != nil && root.ID == id {
		return sub, nil
	}
	out, found := rewrite(root, id, func(*Node) *Node { return sub })
	if !found {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	return out, nil
}

// Remove returns a new tree with the subtree at id deleted.
// The root itself cannot be removed.
func Remove(root *Node, id string) (*Node, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	if root.ID == id {
		return nil, errors.New(errors.ErrCodeInvalidTree, "cannot remove the root node")
	}
	out, found := removeIn(root, id)
	if !found {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	return out, nil
}

// rewrite copies the path from root down to the first node matching id and
// applies fn to the copy of that node. Subtrees off the path are shared with
// the input. Returns the new root and whether id was found.
func rewrite(root *Node, id string, fn func(*Node) *Node) (*Node, bool) {
	if root == nil {
		return nil, false
	}
	if root.ID == id {
		cp := shallowCopy(root)
		return fn(cp), true
	}
	for i, c := range root.Children {
		if sub, found := rewrite(c, id, fn); found {
			cp := shallowCopy(root)
			cp.Children[i] = sub
			return cp, true
		}
	}
	return root, false
}

func removeIn(root *Node, id string) (*Node, bool) {
	for i, c := range root.Children {
		if c.ID == id {
			cp := shallowCopy(root)
			cp.Children = append(cp.Children[:i:i], cp.Children[i+1:]...)
			return cp, true
		}
		if sub, found := removeIn(c, id); found {
			cp := shallowCopy(root)
			cp.Children[i] = sub
			return cp, true
		}
	}
	return root, false
}

// shallowCopy copies a node and its child slice header, sharing the child
// subtrees.
func shallowCopy(n *Node) *Node {
	cp := &Node{ID: n.ID, Label: n.Label, Busy: n.Busy}
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		copy(cp.Children, n.Children)
	}
	return cp
}
