// Package cli implements the facemill command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// SetVersion is called from main with the build-time version.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "facemill",
	Short: "facemill - face milling G-code program builder",
	Long: `facemill turns stock dimensions and tool parameters into a CNC-ready
face milling program using a rectangular spiral strategy.

Machine settings and the coolant catalog live in a JSON config
(./facemill.json or ~/.facemill/config.json); individual jobs are YAML
files or rows in a CSV/Excel batch list.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(configCmd)
}
