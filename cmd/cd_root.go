package cmd

import "github.com/spf13/cobra"

var cdCmd = &cobra.Command{
	Use:   "cd",
	Short: "Compact Disc CIRC/EFM encode and decode",
	Long: `Commands operating on the Red Book CD channel layer: encoding raw
2352-byte sectors into CIRC-interleaved, EFM-modulated channel data, and
decoding that channel data back into sectors.`,
}
