package circ

import (
	"retroio/cd/rs"
	"retroio/cd/subchannel"
)

// DecodedSector is the result of de-interleaving one 98-frame sector back
// into its original 2352-byte payload, plus the diagnostic counts the
// decoder gathers along the way (spec §4.6 steps 5-8; correction is out
// of scope, so these counts are reported, not acted on).
type DecodedSector struct {
	Payload     [SectorPayloadSize]byte
	Subchannel  [SubchannelSize]byte
	P           subchannel.PStatus
	Q           subchannel.Q
	Descrambled bool
	MergeErrors int
	Erasures    int
	C1Errors    int
	C2Errors    int
	C1Errata    []RowErrata
	C2Errata    []RowErrata
}

// RowErrata is one C1 or C2 codeword's non-zero-syndrome diagnostic: the
// syndrome vector rs.Syndromes/rs.SyndromesAt computed for it, and the
// candidate error positions rs.ChienSearch located from the
// rs.BerlekampMassey locator built over those syndromes (spec §4.6 step
// 5, §7: "report, don't correct"). Row is the global frame index the
// codeword is anchored at.
type RowErrata struct {
	Row       int
	Syndromes []byte
	Positions []int
}

// sectorRange is a half-open [start,end) span of global frame indices
// whose first frame carries the S0 subchannel marker.
type sectorRange struct{ start, end int }

// sectorRanges locates sector boundaries by S0 occurrence and returns the
// span of every sector found, dropping the first unconditionally: a
// capture that starts mid-stream cannot be trusted to begin at frame 0
// of a real sector (spec §4.6 step 4).
func sectorRanges(frames []Frame) []sectorRange {
	var starts []int
	for i, f := range frames {
		if f.Control.IsS0() {
			starts = append(starts, i)
		}
	}
	if len(starts) < 2 {
		return nil
	}

	var ranges []sectorRange
	for k := 0; k < len(starts)-1; k++ {
		ranges = append(ranges, sectorRange{starts[k], starts[k+1]})
	}
	ranges = append(ranges, sectorRange{starts[len(starts)-1], len(frames)})
	return ranges[1:]
}

// mappedColumn translates a payload column (0..23, as used by
// delayedLine/swizzledColumn/delayedC2Data) to its position within a
// 32-byte output line: P1 occupies 0..11, P2 occupies 16..27.
func mappedColumn(c int) int {
	if c < 12 {
		return c
	}
	return c + 4
}

// lineAt returns lines[idx] and true, or a zero line and false if idx
// falls outside the captured history — which happens near the start of
// a capture, where the de-interleave's lookback window (up to ~107
// rows, per delayedLine's largest entry) reaches before frame 0.
func lineAt(lines [][FrameSize]byte, idx int) ([FrameSize]byte, bool) {
	if idx < 0 || idx >= len(lines) {
		return [FrameSize]byte{}, false
	}
	return lines[idx], true
}

// Decode reverses the CIRC encoder: it scans channel (a byte-packed
// NRZ-I bit stream, as produced by efm.BitSink.Finish) for frames,
// groups them into sectors, and de-interleaves each sector back to its
// original payload (spec §4.6).
func Decode(channel []byte) []DecodedSector {
	return decodeChannel(channel, false)
}

// DecodeForceDescramble behaves like Decode, but attempts to find the
// data-sync pattern and descramble every sector regardless of what the
// subchannel-Q digital-data flag says — useful when the subchannel is
// missing or too corrupt to trust (the CLI's "-d, --digital" decode
// flag).
func DecodeForceDescramble(channel []byte) []DecodedSector {
	return decodeChannel(channel, true)
}

func decodeChannel(channel []byte, forceDescramble bool) []DecodedSector {
	frames := ExtractFrames(channel)
	lines := make([][FrameSize]byte, len(frames))
	for i, f := range frames {
		lines[i] = f.Bytes()
	}

	var out []DecodedSector
	for _, rng := range sectorRanges(frames) {
		out = append(out, decodeSector(frames, lines, rng, forceDescramble))
	}
	return out
}

// decodeSector rebuilds one sector's 2352-byte payload and subchannel,
// and runs the C1/C2 diagnostic checks over its 98 rows.
func decodeSector(frames []Frame, lines [][FrameSize]byte, rng sectorRange, forceDescramble bool) DecodedSector {
	var d DecodedSector

	for r := rng.start; r < rng.end && r-rng.start < LinesPerSector; r++ {
		localRow := r - rng.start
		f := frames[r]
		if !f.MergeValid {
			d.MergeErrors++
		}
		for _, sym := range f.Data {
			if sym.IsErasure() {
				d.Erasures++
			}
		}

		if localRow >= 2 {
			if b, ok := f.Control.IsByte(); ok {
				d.Subchannel[localRow-2] = b
			}
		}

		for c := 0; c < 24; c++ {
			row := r - delayedLine[c] + delayedOffset
			line, ok := lineAt(lines, row)
			if !ok {
				continue
			}
			d.Payload[localRow*24+swizzledColumn[c]] = line[mappedColumn(c)]
		}

		if errata := checkC1(lines, r); len(errata) > 0 {
			d.C1Errors += len(errata)
			d.C1Errata = append(d.C1Errata, errata...)
		}
		if errata, ok := checkC2(lines, r); ok && rs.NonZero(errata.Syndromes) {
			d.C2Errors++
			d.C2Errata = append(d.C2Errata, errata)
		}
	}

	cols := subchannel.Transpose(d.Subchannel)
	d.P = subchannel.DecodeP(cols.P)
	d.Q = subchannel.DecodeQ(cols.Q)

	if d.Q.DigitalData() || forceDescramble {
		if s, ok := FindDataSync(d.Payload); ok {
			Descramble(&d.Payload, s)
			d.Descrambled = true
		}
	}

	return d
}

// c2Gather reconstructs the 24-byte C2 message gathered at output row r
// with gather location loc (spec §4.5 step 3: a message byte at payload
// column c, gathered with location loc, sits loc-decodeC2Delays[mapped
// column] output rows away from r — derived by inverting the encoder's
// c2Input, which expresses the same gather in terms of sector rows
// rather than output rows). Passing loc=delayedC2Locs[n] reconstructs
// column n's own message; passing delayedC2Locs[n]+1 reconstructs the
// "one row ahead" lookahead value the encoder's C1 delay-1 pass consumes
// but never writes to the line itself.
func c2Gather(lines [][FrameSize]byte, r, loc int) (msg [24]byte, ok bool) {
	for c := 0; c < 24; c++ {
		row := r + loc - decodeC2Delays[mappedColumn(c)]
		line, lok := lineAt(lines, row)
		if !lok {
			return msg, false
		}
		msg[c] = line[mappedColumn(c)]
	}
	return msg, true
}

// c2ValueAt recomputes the un-inverted C2 parity value for column n as
// the encoder would have, from the message c2Gather reconstructs.
func c2ValueAt(lines [][FrameSize]byte, r, loc, n int) (byte, bool) {
	msg, ok := c2Gather(lines, r, loc)
	if !ok {
		return 0, false
	}
	return rs.EncodeC2One(msg, n), true
}

// c2CodewordAt reconstructs the complete 28-symbol C2 codeword for the
// virtual message anchored at row t: its 24-byte message (gathered at
// the reference delay delayedC2Locs[0]) plus the 4 parity bytes the
// encoder scattered across rows t, t+3, t+8, t+11 — the row offsets
// between delayedC2Locs[0] and each of delayedC2Locs[1..3] (spec §4.5
// steps 3-4). Each of a row's four stored C2 bytes belongs to a
// different virtual message gathered at a different delay; unwinding
// that delay finds all four parity bytes for one message at once,
// recovering a real single codeword to run syndromes against instead of
// four independent one-byte comparisons.
func c2CodewordAt(lines [][FrameSize]byte, t int) (codeword [rs.C2SymbolCount]byte, ok bool) {
	msg, ok := c2Gather(lines, t, delayedC2Locs[0])
	if !ok {
		return codeword, false
	}
	copy(codeword[0:12], msg[0:12])
	copy(codeword[16:28], msg[12:24])

	for n := 0; n < 4; n++ {
		row := t + delayedC2Locs[0] - delayedC2Locs[n]
		line, lok := lineAt(lines, row)
		if !lok {
			return codeword, false
		}
		codeword[12+n] = line[12+n] ^ 0xFF
	}
	return codeword, true
}

// checkC2 computes the real 4-root syndrome vector for the C2 codeword
// anchored at row t and, if it comes back non-zero, runs Berlekamp-
// Massey and Chien search over it to locate its apparent errata (spec
// §4.6 step 5, §7).
func checkC2(lines [][FrameSize]byte, t int) (RowErrata, bool) {
	codeword, ok := c2CodewordAt(lines, t)
	if !ok {
		return RowErrata{}, false
	}

	syn := rs.Syndromes(codeword[:], rs.C2ParityCount)
	errata := RowErrata{Row: t, Syndromes: syn}
	if rs.NonZero(syn) {
		locator := rs.BerlekampMassey(syn)
		errata.Positions = rs.ChienSearch(locator, rs.C2SymbolCount)
	}
	return errata, true
}

// c1MessageAt rebuilds the 28-byte C1 message for one of the encoder's
// two delay passes, anchored at output row r (spec §4.5 step 5, mirrored
// from the encoder's c1Input). The delay-1 pass's insert bytes at
// columns 12 and 14 are the encoder's "one row ahead" C2 lookahead
// values (c2f), which are never written to the line itself, so they are
// re-derived via c2ValueAt rather than read directly.
func c1MessageAt(lines [][FrameSize]byte, r, pass int) (msg [28]byte, ok bool) {
	cur, cok := lineAt(lines, r)
	prev, pok := lineAt(lines, r-1)
	if !cok || !pok {
		return msg, false
	}

	for c := 0; c < 12; c++ {
		if passDelay(c, pass) == 0 {
			msg[c] = cur[c]
		} else {
			msg[c] = prev[c]
		}
	}
	for c := 0; c < 12; c++ {
		if passDelay(c, pass) == 0 {
			msg[16+c] = cur[16+c]
		} else {
			msg[16+c] = prev[16+c]
		}
	}

	var insert [4]byte
	if pass == 1 {
		c2f0, ok0 := c2ValueAt(lines, r, delayedC2Locs[0]+1, 0)
		c2f1, ok1 := c2ValueAt(lines, r, delayedC2Locs[2]+1, 2)
		if !ok0 || !ok1 {
			return msg, false
		}
		insert = [4]byte{c2f0, cur[13] ^ 0xFF, c2f1, cur[15] ^ 0xFF}
	} else {
		c2v0, ok0 := c2ValueAt(lines, r, delayedC2Locs[0], 0)
		c2v2, ok1 := c2ValueAt(lines, r, delayedC2Locs[2], 2)
		if !ok0 || !ok1 {
			return msg, false
		}
		insert = [4]byte{c2v0, prev[13] ^ 0xFF, c2v2, prev[15] ^ 0xFF}
	}
	copy(msg[12:16], insert[:])
	return msg, true
}

// c1CodewordAt reconstructs the C1 codeword for one delay pass at row r:
// its 28-byte message (rebuilt by c1MessageAt, exactly as the encoder
// assembled it in c1Input), the two parity bytes that pass actually
// owns — columns 0 and 2 for pass 0, columns 1 and 3 for pass 1 (spec
// §4.5 step 5's two-pass split) — read from the line, and the other two
// parity positions recomputed from the message, so that a clean row
// yields zero syndromes at the pass's own roots. The two passes are
// distinct sub-codes: pass 0's message differs from pass 1's wherever
// their per-column delay disagrees, so their roots (alpha^0,alpha^2 and
// alpha^1,alpha^3) can't be folded into one shared 4-root codeword.
func c1CodewordAt(lines [][FrameSize]byte, r, pass int) (codeword [rs.C1SymbolCount]byte, roots [2]int, ok bool) {
	msg, ok := c1MessageAt(lines, r, pass)
	if !ok {
		return codeword, roots, false
	}
	copy(codeword[0:rs.C1MessageCount], msg[:])

	cur, cok := lineAt(lines, r)
	if !cok {
		return codeword, roots, false
	}
	if pass == 1 {
		codeword[28] = rs.EncodeC1One(msg, 0)
		codeword[29] = cur[29] ^ 0xFF
		codeword[30] = rs.EncodeC1One(msg, 2)
		codeword[31] = cur[31] ^ 0xFF
		roots = [2]int{1, 3}
	} else {
		codeword[28] = cur[28] ^ 0xFF
		codeword[29] = rs.EncodeC1One(msg, 1)
		codeword[30] = cur[30] ^ 0xFF
		codeword[31] = rs.EncodeC1One(msg, 3)
		roots = [2]int{0, 2}
	}
	return codeword, roots, true
}

// checkC1 runs the syndrome → Berlekamp-Massey → Chien search pipeline
// for both of row r's C1 delay passes, returning one RowErrata per pass
// whose syndromes come back non-zero (spec §4.6 step 5, §7). Because
// each pass only owns 2 of the 4 C1 roots, its locator and errata
// positions come from ChienSearchStrided with step 2 rather than the
// standard contiguous-root ChienSearch.
func checkC1(lines [][FrameSize]byte, r int) []RowErrata {
	var out []RowErrata
	for pass := 0; pass < 2; pass++ {
		codeword, roots, ok := c1CodewordAt(lines, r, pass)
		if !ok {
			continue
		}
		syn := rs.SyndromesAt(codeword[:], roots[:])
		if !rs.NonZero(syn) {
			continue
		}
		locator := rs.BerlekampMassey(syn)
		positions := rs.ChienSearchStrided(locator, rs.C1SymbolCount, 2)
		out = append(out, RowErrata{Row: r, Syndromes: syn, Positions: positions})
	}
	return out
}
