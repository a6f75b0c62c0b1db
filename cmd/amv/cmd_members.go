package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MarkThunder/aosp-member-viewer/syntax/treesitter"
	"github.com/MarkThunder/aosp-member-viewer/workspace"
)

func newMembersCmd() *cobra.Command {
	var maxFileSize int

	cmd := &cobra.Command{
		Use:   "members <file.java>",
		Short: "Print the class, field and method summary of a Java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ws := workspace.New(filepath.Dir(path), treesitter.NewParser(), maxFileSize)

			result, err := ws.AnalyzeFile(path)
			if err != nil {
				return fmt.Errorf("analyze %s: %w", path, err)
			}

			summary := result.Summary
			if summary.PackageName != "" {
				fmt.Printf("package %s\n", summary.PackageName)
			}
			fmt.Printf("class %s\n", summary.ClassName)
			for _, inner := range summary.InnerClasses {
				fmt.Printf("  inner class %s\n", inner)
			}

			if len(summary.Fields) > 0 {
				fmt.Println("\nFields:")
				for _, f := range summary.Fields {
					fmt.Printf("  %4d  %-9s %s%s %s\n", f.Line, f.Visibility, staticMarker(f.IsStatic), f.Type, f.Name)
				}
			}
			if len(summary.Methods) > 0 {
				fmt.Println("\nMethods:")
				for _, m := range summary.Methods {
					fmt.Printf("  %4d  %-9s %s%s(%d)\n", m.Line, m.Visibility, staticMarker(m.IsStatic), m.Name, m.ParamCount)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&maxFileSize, "max-file-size", 0, "size cutoff in bytes (0 = default)")

	return cmd
}

func staticMarker(isStatic bool) string {
	if isStatic {
		return "static "
	}
	return ""
}
