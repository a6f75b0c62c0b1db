package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MarkThunder/aosp-member-viewer/analysis"
	"github.com/MarkThunder/aosp-member-viewer/syntax"
	"github.com/MarkThunder/aosp-member-viewer/syntax/treesitter"
	"github.com/MarkThunder/aosp-member-viewer/workspace"
)

func newCallGraphCmd() *cobra.Command {
	var offset int
	var line, col int

	cmd := &cobra.Command{
		Use:   "callgraph <file.java>",
		Short: "Show callers and callees of the method at a position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ws := workspace.New(filepath.Dir(path), treesitter.NewParser(), 0)

			result, err := ws.AnalyzeFile(path)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", path, err)
			}

			if offset < 0 {
				if line < 1 {
					return fmt.Errorf("either --offset or --line is required")
				}
				content, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				lines := syntax.BuildLineIndex(content)
				if line > len(lines) {
					return fmt.Errorf("line %d past end of file", line)
				}
				offset = lines[line-1] + col
			}

			graph, ok := analysis.BuildCallGraph(result.Decls, result.Invocations, result.Summary.ClassName, path, offset)
			if !ok {
				return fmt.Errorf("no method encloses offset %d", offset)
			}

			fmt.Println(graph.Label)
			fmt.Printf("\nCallers (%d):\n", len(graph.Callers))
			for _, ref := range graph.Callers {
				fmt.Printf("  %s.%s  %s:%d\n", ref.ClassName, ref.MethodName, ref.File, ref.Line)
			}
			fmt.Printf("\nCallees (%d):\n", len(graph.Callees))
			for _, ref := range graph.Callees {
				fmt.Printf("  %s.%s  %s:%d\n", ref.ClassName, ref.MethodName, ref.File, ref.Line)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", -1, "byte offset of the cursor")
	cmd.Flags().IntVar(&line, "line", 0, "1-based cursor line (with --col)")
	cmd.Flags().IntVar(&col, "col", 0, "0-based cursor column")

	return cmd
}
