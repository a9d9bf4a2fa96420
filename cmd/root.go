package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "retroio",
	Short: "Encode and decode Red Book CD channel data",
	Long: `retroio reads and writes the Red Book Compact Disc channel layer:
CIRC-interleaved, Reed-Solomon protected, EFM-modulated sectors.`,
}

func init() {
	rootCmd.AddCommand(cdCmd)
}

// Execute runs the root command, parsing os.Args.
func Execute() error {
	return rootCmd.Execute()
}
