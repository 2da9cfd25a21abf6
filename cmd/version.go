package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cowjuh/fs-utilities/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(os.Stdout, version.GetDetailedVersionInfo())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
