package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/tree"
)

// newNewCmd creates the new command for starting a mind map.
func newNewCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new [label]",
		Short: "Create a mind map with a single root node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := tree.New(args[0])
			if err := tree.ExportJSON(root, output); err != nil {
				return err
			}
			printSuccess("Created %s", StyleHighlight.Render(args[0]))
			printFile(output)
			printNextStep("Add a node", fmt.Sprintf("mindgrove add %s %s \"Topic\"", output, root.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "map.json", "output file")
	return cmd
}

// newAddCmd creates the add command for appending a child node.
func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [file] [parent-id] [label]",
		Short: "Add a child node under a parent",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, parentID, label := args[0], args[1], args[2]

			root, err := tree.ImportJSON(path)
			if err != nil {
				return err
			}
			child := tree.New(label)
			updated, err := tree.Insert(root, parentID, child)
			if err != nil {
				return err
			}
			if err := tree.ExportJSON(updated, path); err != nil {
				return err
			}
			printSuccess("Added %s", StyleHighlight.Render(label))
			printDetail("id %s", child.ID)
			return nil
		},
	}
}

// newRenameCmd creates the rename command.
func newRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [file] [id] [label]",
		Short: "Rename a node",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id, label := args[0], args[1], args[2]

			root, err := tree.ImportJSON(path)
			if err != nil {
				return err
			}
			updated, err := tree.Rename(root, id, label)
			if err != nil {
				return err
			}
			if err := tree.ExportJSON(updated, path); err != nil {
				return err
			}
			printSuccess("Renamed to %s", StyleHighlight.Render(label))
			return nil
		},
	}
}

// newRemoveCmd creates the remove command for deleting a subtree.
func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [file] [id]",
		Short: "Remove a node and its subtree",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, id := args[0], args[1]

			root, err := tree.ImportJSON(path)
			if err != nil {
				return err
			}
			before := tree.Count(root)
			updated, err := tree.Remove(root, id)
			if err != nil {
				return err
			}
			if err := tree.ExportJSON(updated, path); err != nil {
				return err
			}
			printSuccess("Removed %d node(s)", before-tree.Count(updated))
			return nil
		},
	}
}

// newShowCmd creates the show command for printing a map as an outline.
func newShowCmd() *cobra.Command {
	var ids bool

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print a mind map as an indented outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := tree.ImportJSON(args[0])
			if err != nil {
				return err
			}
			printOutline(root, 0, ids)
			printStats(tree.Count(root), tree.Count(root)-1, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ids, "ids", false, "show node IDs")
	return cmd
}

// printOutline prints the tree as an indented outline, labels truncated the
// same way the renderer truncates them.
func printOutline(n *tree.Node, depth int, ids bool) {
	indent := strings.Repeat("  ", depth)
	label := render.TruncateLabel(n.Label, render.DefaultLabelBudget)
	line := indent + StyleValue.Render(label)
	if n.Busy {
		line += " " + StyleWarning.Render("(busy)")
	}
	if ids {
		line += " " + StyleDim.Render(n.ID)
	}
	fmt.Println(line)
	for _, c := range n.Children {
		printOutline(c, depth+1, ids)
	}
}
