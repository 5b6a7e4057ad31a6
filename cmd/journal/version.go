package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"journal/internal/server"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the journal version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("journal version %s\n", server.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
