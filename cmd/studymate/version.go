package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the studymate version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("studymate %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
