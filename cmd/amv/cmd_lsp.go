package main

import (
	"github.com/spf13/cobra"

	"github.com/MarkThunder/aosp-member-viewer/syntax"
	"github.com/MarkThunder/aosp-member-viewer/syntax/treesitter"
	"github.com/MarkThunder/aosp-member-viewer/workspace"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := workspace.NewLSPServer(version, func() syntax.Parser {
				return treesitter.NewParser()
			})
			return server.RunStdio()
		},
	}
}
