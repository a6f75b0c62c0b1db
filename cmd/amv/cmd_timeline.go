package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarkThunder/aosp-member-viewer/syntax/treesitter"
	"github.com/MarkThunder/aosp-member-viewer/workspace"
)

func newTimelineCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "timeline <dir>",
		Short: "Show the boot lifecycle timeline of known startup files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			ws := workspace.New(root, treesitter.NewParser(), 0)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			timelines, err := ws.LifecycleTimelines(ctx, root)
			if err != nil {
				fmt.Printf("scan stopped early: %v\n\n", err)
			}

			for _, tl := range timelines {
				fmt.Printf("%s (%s)\n", tl.ClassName, tl.File)
				for _, entry := range tl.Entries {
					fmt.Printf("  %4d  %s\n", entry.Line, entry.Method)
				}
			}
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "overall scan timeout")

	return cmd
}
