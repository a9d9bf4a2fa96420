package cmd

import (
	"encoding/csv"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"retroio/cd/circ"
	"retroio/internal/cdlog"
)

var (
	cdDecodeFormat     string
	cdDecodeSubchannel bool
	cdDecodeErrors     bool
	cdDecodeDigital    bool
	cdDecodeOutput     string
	cdDecodeCooked     bool
)

var cdDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode CIRC/EFM channel data back into CD sectors",
}

func init() {
	cdDecodeCmd.PersistentFlags().StringVarP(&cdDecodeFormat, "format", "f", "packed", "input channel bit format: packed|text")
	cdDecodeCmd.PersistentFlags().BoolVarP(&cdDecodeSubchannel, "subchannel", "s", false, "include subchannel P/Q fields")
	cdDecodeCmd.PersistentFlags().BoolVarP(&cdDecodeErrors, "errors", "e", false, "include merge/erasure/C1/C2 error counts")
	cdDecodeCmd.PersistentFlags().BoolVarP(&cdDecodeDigital, "digital", "d", false, "force descramble even without a digital-data subchannel flag")
	cdDecodeCmd.PersistentFlags().StringVarP(&cdDecodeOutput, "output", "o", "", "output file (overrides positional <out> for parseCSV; required for analyze to write a report instead of stdout)")
	cdDecodeCmd.PersistentFlags().BoolVarP(&cdDecodeCooked, "cooked", "c", false, "include cooked sector payload bytes (hex preview for analyze, payload_hex16 column for parseCSV)")

	cdDecodeCmd.AddCommand(cdDecodeParseCSVCmd)
	cdDecodeCmd.AddCommand(cdDecodeAnalyzeCmd)
	cdCmd.AddCommand(cdDecodeCmd)
}

var cdDecodeParseCSVCmd = &cobra.Command{
	Use:   "parseCSV <in> <out>",
	Short: "Decode a channel bitstream and write one CSV row per sector",
	Args:  cobra.ExactArgs(2),
	RunE:  runCDDecodeParseCSV,
}

var cdDecodeAnalyzeCmd = &cobra.Command{
	Use:   "analyze <in>",
	Short: "Decode a channel bitstream and print a human-readable summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runCDDecodeAnalyze,
}

func readChannel(filename, format string) ([]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cd decode: opening input")
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "cd decode: reading input")
	}

	switch format {
	case "text":
		bits := make([]byte, len(raw))
		for i, c := range raw {
			if c == '1' {
				bits[i] = 1
			}
		}
		return packBitsLSBFirst(bits), nil
	case "packed", "":
		return raw, nil
	default:
		return nil, errors.Errorf("cd decode: unknown --format %q (want packed|text)", format)
	}
}

// packBitsLSBFirst is readChannel's helper for --format text: it repacks
// one-bit-per-byte input back into the LSB-first packed form circ.Decode
// expects (the inverse of circ.UnpackBits).
func packBitsLSBFirst(bits []byte) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, b := range bits {
		if b == 1 {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// decodeChannel runs circ.Decode, honoring --digital to force a
// descramble attempt regardless of what the subchannel says.
func decodeChannel(channel []byte) []circ.DecodedSector {
	if cdDecodeDigital {
		return circ.DecodeForceDescramble(channel)
	}
	return circ.Decode(channel)
}

func runCDDecodeParseCSV(cmd *cobra.Command, args []string) error {
	in := args[0]
	out := args[1]
	if cdDecodeOutput != "" {
		out = cdDecodeOutput
	}

	channel, err := readChannel(in, cdDecodeFormat)
	if err != nil {
		return err
	}
	sectors := decodeChannel(channel)
	cdlog.Infof("decoded %d sector(s) from %s", len(sectors), in)

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "cd decode: creating CSV output")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"sector", "descrambled"}
	if cdDecodeSubchannel {
		header = append(header, "p_status", "q_control", "q_adr", "q_crc_valid", "q_dataq_hex")
	}
	if cdDecodeErrors {
		header = append(header, "merge_errors", "erasures", "c1_errors", "c2_errors")
	}
	if cdDecodeCooked {
		header = append(header, "payload_hex16")
	}
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "cd decode: writing CSV header")
	}

	for i, s := range sectors {
		row := []string{strconv.Itoa(i), strconv.FormatBool(s.Descrambled)}
		if cdDecodeSubchannel {
			row = append(row,
				s.P.String(), strconv.Itoa(int(s.Q.Control)), strconv.Itoa(int(s.Q.ADR)),
				strconv.FormatBool(s.Q.CRCValid), hex.EncodeToString(s.Q.DataQ[:]))
		}
		if cdDecodeErrors {
			row = append(row,
				strconv.Itoa(s.MergeErrors), strconv.Itoa(s.Erasures),
				strconv.Itoa(s.C1Errors), strconv.Itoa(s.C2Errors))
		}
		if cdDecodeCooked {
			row = append(row, hex.EncodeToString(s.Payload[:16]))
		}
		if err := w.Write(row); err != nil {
			return errors.Wrapf(err, "cd decode: writing CSV row %d", i)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "cd decode: flushing CSV output")
}

func runCDDecodeAnalyze(cmd *cobra.Command, args []string) error {
	in := args[0]

	channel, err := readChannel(in, cdDecodeFormat)
	if err != nil {
		return err
	}
	sectors := decodeChannel(channel)

	out := os.Stdout
	if cdDecodeOutput != "" {
		f, err := os.Create(cdDecodeOutput)
		if err != nil {
			return errors.Wrap(err, "cd decode: creating report output")
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintf(out, "%s: %d sector(s) decoded\n", in, len(sectors))
	for i, s := range sectors {
		fmt.Fprintf(out, "sector %d: P=%v Q.control=%#x Q.adr=%#x Q.crc_valid=%v descrambled=%v\n",
			i, s.P, s.Q.Control, s.Q.ADR, s.Q.CRCValid, s.Descrambled)
		if cdDecodeErrors {
			fmt.Fprintf(out, "  merge_errors=%d erasures=%d c1_errors=%d c2_errors=%d\n",
				s.MergeErrors, s.Erasures, s.C1Errors, s.C2Errors)
			for _, e := range s.C1Errata {
				fmt.Fprintf(out, "  c1 row=%d syndromes=%v errata=%v\n", e.Row, e.Syndromes, e.Positions)
			}
			for _, e := range s.C2Errata {
				fmt.Fprintf(out, "  c2 row=%d syndromes=%v errata=%v\n", e.Row, e.Syndromes, e.Positions)
			}
		}
		if cdDecodeCooked {
			fmt.Fprintf(out, "  payload[0:16]=%s\n", hex.EncodeToString(s.Payload[:16]))
		}
	}
	return nil
}
