package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MarkThunder/aosp-member-viewer/syntax/treesitter"
	"github.com/MarkThunder/aosp-member-viewer/workspace"
)

func newServicesCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "services <dir>",
		Short: "Scan a directory for classes extending SystemService",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := args[0]
			ws := workspace.New(root, treesitter.NewParser(), 0)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			services, err := ws.ScanSystemServices(ctx, root)
			if err != nil {
				fmt.Printf("scan stopped early: %v\n\n", err)
			}

			for _, svc := range services {
				fmt.Printf("%s\n", svc.ClassName)
				if svc.OnStartLine > 0 {
					fmt.Printf("  onStart         line %d\n", svc.OnStartLine)
				}
				for _, l := range svc.BootPhaseLine {
					fmt.Printf("  onBootPhase     line %d\n", l)
				}
				for _, reg := range svc.Services {
					fmt.Printf("  registers %-20q line %d\n", reg.Name, reg.Line)
				}
			}
			fmt.Printf("\n%d system service(s)\n", len(services))
			return nil
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "overall scan timeout")

	return cmd
}
