package main

import (
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "amv",
		Short: "Member, call-graph and boot-lifecycle analysis for AOSP Java sources",
	}

	rootCmd.AddCommand(newMembersCmd())
	rootCmd.AddCommand(newCallGraphCmd())
	rootCmd.AddCommand(newServicesCmd())
	rootCmd.AddCommand(newTimelineCmd())
	rootCmd.AddCommand(newLocksCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
