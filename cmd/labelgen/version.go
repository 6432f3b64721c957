package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of labelgen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("labelgen %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
