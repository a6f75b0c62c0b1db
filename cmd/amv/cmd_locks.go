package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarkThunder/aosp-member-viewer/analysis"
)

func newLocksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "locks <file-or-dir>",
		Short: "Scan for hazardous patterns inside synchronized blocks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}

			total := 0
			report := func(file string) error {
				content, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				for _, w := range analysis.DetectLockHazards(content) {
					fmt.Printf("%s:%d: %s\n", file, w.Line, w.Message)
					total++
				}
				return nil
			}

			if !info.IsDir() {
				if err := report(path); err != nil {
					return err
				}
			} else {
				err := filepath.Walk(path, func(file string, info os.FileInfo, err error) error {
					if err != nil {
						return nil
					}
					if info.IsDir() {
						if strings.HasPrefix(info.Name(), ".") && file != path {
							return filepath.SkipDir
						}
						return nil
					}
					if filepath.Ext(file) == ".java" {
						report(file)
					}
					return nil
				})
				if err != nil {
					return err
				}
			}

			fmt.Printf("\n%d warning(s)\n", total)
			return nil
		},
	}
}
