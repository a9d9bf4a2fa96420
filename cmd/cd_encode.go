package cmd

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"retroio/cd/circ"
	"retroio/cd/efm"
	"retroio/cd/gen"
	"retroio/cd/msf"
	"retroio/cd/scramble"
	"retroio/cd/subchannel"
	"retroio/internal/cdlog"
	"retroio/storage"
)

var (
	cdEncodeInput   string
	cdEncodeDigital bool
	cdEncodeEFM     string
	cdEncodePregap  bool
	cdEncodeOutput  string
	cdEncodeText    bool
	cdEncodeVerbose bool
)

var cdEncodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode raw CD sectors into CIRC/EFM channel data",
	Long: `Reads a file of contiguous 2352-byte raw sectors, runs them through the
CIRC interleaver and Reed-Solomon encoder, and writes either the
modulated EFM channel bitstream or the raw 32-byte-per-line CIRC output.`,
	RunE: runCDEncode,
}

func init() {
	cdEncodeCmd.Flags().StringVarP(&cdEncodeInput, "input", "i", "", "raw sector input file (required)")
	cdEncodeCmd.Flags().BoolVarP(&cdEncodeDigital, "digital", "d", false, "mark and scramble sectors as data")
	cdEncodeCmd.Flags().StringVarP(&cdEncodeEFM, "efm", "e", "", "write EFM bitstream to file (mutually exclusive with --output)")
	cdEncodeCmd.Flags().BoolVarP(&cdEncodePregap, "pregap", "p", false, "emit 153 leading pregap sectors")
	cdEncodeCmd.Flags().StringVarP(&cdEncodeOutput, "output", "o", "", "write raw 32-byte-per-line CIRC output")
	cdEncodeCmd.Flags().BoolVarP(&cdEncodeText, "text", "t", false, "with --efm, write '0'/'1' text instead of packed bits")
	cdEncodeCmd.Flags().BoolVarP(&cdEncodeVerbose, "verbose", "v", false, "enable internal debug logs")
	_ = cdEncodeCmd.MarkFlagRequired("input")
	cdCmd.AddCommand(cdEncodeCmd)
}

func runCDEncode(cmd *cobra.Command, args []string) error {
	cdlog.SetVerbose(cdEncodeVerbose)

	if cdEncodeEFM != "" && cdEncodeOutput != "" {
		return errors.New("cd encode: --efm and --output are mutually exclusive")
	}
	if cdEncodeText && cdEncodeEFM == "" {
		return errors.New("cd encode: --text requires --efm")
	}

	sectors, err := readRawSectors(cdEncodeInput)
	if err != nil {
		return err
	}
	cdlog.Infof("read %d input sector(s) from %s", len(sectors), cdEncodeInput)

	if cdEncodePregap {
		pregap := make([][circ.SectorPayloadSize]byte, gen.PregapSectorCount)
		for i := range pregap {
			pregap[i] = gen.Pregap(i)
		}
		sectors = append(pregap, sectors...)
		cdlog.Infof("prepended %d pregap sector(s)", gen.PregapSectorCount)
	}

	sink := efm.NewBitSink()
	enc := circ.NewEncoder(sink)

	var rawLines []byte
	if cdEncodeOutput != "" {
		enc.OnLine = func(l circ.Line) {
			b := l.Bytes()
			rawLines = append(rawLines, b[:]...)
		}
	}

	for i, sector := range sectors {
		var scBlock *[circ.SubchannelSize]byte
		if cdEncodeDigital {
			scramble.Apply(sector[scramble.PayloadOffset:])
			block := digitalSubchannel(i)
			scBlock = &block
		}
		enc.Queue(sector, scBlock)
	}

	switch {
	case cdEncodeEFM != "":
		return writeEFM(sink, cdEncodeEFM, cdEncodeText)
	case cdEncodeOutput != "":
		return writeRawLines(cdEncodeOutput, rawLines)
	default:
		sink.Finish()
		cdlog.Infof("encoded %d sector(s); no output file requested (--efm/--output)", len(sectors))
		return nil
	}
}

// digitalSubchannel builds the subchannel block a data sector at absolute
// index i carries: P inside-track, Q control marked digital data (spec
// §6's "-d, --digital"), track/index 1, and the running absolute MSF
// timecode in data-Q bytes 6..8 (the Red Book's AMIN/ASEC/AFRAME fields).
func digitalSubchannel(i int) [circ.SubchannelSize]byte {
	t := msf.FromLBA(i).Bytes()
	dataQ := [9]byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x00, t[0], t[1], t[2]}
	q := subchannel.BuildQ(0b0100, 0x01, dataQ)
	return subchannel.Encode(subchannel.Columns{P: subchannel.PColumn(subchannel.PInsideTrack), Q: q})
}

// readRawSectors reads every complete 2352-byte sector from filename,
// silently dropping a short trailing remainder.
func readRawSectors(filename string) ([][circ.SectorPayloadSize]byte, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "cd encode: opening input")
	}
	defer f.Close()

	reader := storage.NewReader(f)
	var sectors [][circ.SectorPayloadSize]byte
	for {
		buf, err := reader.ReadBytes(circ.SectorPayloadSize)
		if err != nil {
			if errors.Cause(err) == io.EOF || errors.Cause(err) == io.ErrUnexpectedEOF {
				break
			}
			return nil, errors.Wrap(err, "cd encode: reading input")
		}
		var s [circ.SectorPayloadSize]byte
		copy(s[:], buf)
		sectors = append(sectors, s)
	}
	return sectors, nil
}

func writeEFM(sink *efm.BitSink, filename string, text bool) error {
	channel := sink.Finish()

	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "cd encode: creating EFM output")
	}
	defer f.Close()
	writer := storage.NewWriter(f)

	if text {
		bits := circ.UnpackBits(channel)
		out := make([]byte, len(bits))
		for i, b := range bits {
			if b == 1 {
				out[i] = '1'
			} else {
				out[i] = '0'
			}
		}
		if err := writer.WriteBytes(out); err != nil {
			return err
		}
	} else {
		if err := writer.WriteBytes(channel); err != nil {
			return err
		}
	}
	return writer.Flush()
}

func writeRawLines(filename string, lines []byte) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "cd encode: creating raw output")
	}
	defer f.Close()
	writer := storage.NewWriter(f)
	if err := writer.WriteBytes(lines); err != nil {
		return err
	}
	return writer.Flush()
}
