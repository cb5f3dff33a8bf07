package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindgrove/mindgrove/pkg/errors"
	"github.com/mindgrove/mindgrove/pkg/expand"
	"github.com/mindgrove/mindgrove/pkg/tree"
)

// newExpandCmd creates the expand command, which asks the configured
// suggestion service for child topics and splices them under a node.
//
// The node is marked busy for the duration of the request so concurrent
// renders of the same file show the in-flight state, and the busy flag is
// cleared whether the request succeeds or fails.
func newExpandCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "expand [file] [id]",
		Short: "Generate child suggestions for a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExpand(cmd, args[0], args[1], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum suggestions (0 uses the configured default)")
	return cmd
}

func runExpand(cmd *cobra.Command, path, id string, limit int) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := loadConfig(logger)

	if cfg.Expand.Endpoint == "" {
		return errors.New(errors.ErrCodeInvalidInput,
			"no expand endpoint configured; set [expand] endpoint in the config file")
	}
	if limit == 0 {
		limit = cfg.Expand.Limit
	}

	root, err := tree.ImportJSON(path)
	if err != nil {
		return err
	}
	node := tree.Find(root, id)
	if node == nil {
		return errors.New(errors.ErrCodeNodeNotFound, "no node with id %q", id)
	}
	if node.Busy {
		printWarning("node is already expanding")
		return nil
	}

	// Persist the busy flag so other processes rendering this file see the
	// spinner state.
	busy, err := tree.SetBusy(root, id, true)
	if err != nil {
		return err
	}
	if err := tree.ExportJSON(busy, path); err != nil {
		return err
	}

	var clientOpts []expand.Option
	if cfg.Expand.APIKey != "" {
		clientOpts = append(clientOpts, expand.WithAPIKey(cfg.Expand.APIKey))
	}
	client, err := expand.NewClient(cfg.Expand.Endpoint, clientOpts...)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Expanding %q...", node.Label))
	spinner.Start()

	children, expandErr := client.Expand(ctx, node.Label, pathTo(root, id), limit)

	// Clear busy regardless of outcome; a failed expand must not leave the
	// node stuck spinning.
	final := busy
	if cleared, err := tree.SetBusy(final, id, false); err == nil {
		final = cleared
	}
	if expandErr != nil {
		_ = tree.ExportJSON(final, path)
		spinner.StopWithError(fmt.Sprintf("Expansion failed: %s", errors.UserMessage(expandErr)))
		return expandErr
	}

	for _, c := range children {
		next, err := tree.Insert(final, id, c)
		if err != nil {
			break
		}
		final = next
	}
	if err := tree.ExportJSON(final, path); err != nil {
		spinner.Stop()
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Added %d suggestion(s)", len(children)))
	for _, c := range children {
		printDetail("%s", c.Label)
	}
	return nil
}

// pathTo returns the labels from the root down to the parent of id, used as
// context for the suggestion service. The target node itself is excluded.
func pathTo(root *tree.Node, id string) []string {
	var trail []string
	var walk func(n *tree.Node, acc []string) bool
	walk = func(n *tree.Node, acc []string) bool {
		if n.ID == id {
			trail = append(trail, acc...)
			return true
		}
		for _, c := range n.Children {
			if walk(c, append(acc, n.Label)) {
				return true
			}
		}
		return false
	}
	walk(root, nil)
	return trail
}
