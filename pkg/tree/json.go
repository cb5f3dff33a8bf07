package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteJSON encodes the tree rooted at root as indented JSON and writes it
// to w. The format round-trips through [ReadJSON].
func WriteJSON(root *Node, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a tree from r.
//
// A node with an absent "children" field is treated identically to one with
// an empty children array. Every node must carry an "id"; labels may be
// empty. ReadJSON does not reject duplicate IDs; use [Validate] to check the
// caller contract.
func ReadJSON(r io.Reader) (*Node, error) {
	var root Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if root.ID == "" {
		return nil, fmt.Errorf("root node is missing an id")
	}
	return &root, nil
}

// ExportJSON writes the tree to a JSON file at path.
func ExportJSON(root *Node, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(root, f)
}

// ImportJSON reads a tree from the JSON file at path.
func ImportJSON(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
