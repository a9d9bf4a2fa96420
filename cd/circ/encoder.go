package circ

import (
	"retroio/cd/efm"
	"retroio/cd/rs"
)

// Line is one emitted CIRC frame: a subchannel symbol plus the 32-byte
// payload (P1 · C2 · P2 · C1), C2 and C1 already stored inverted (spec
// §3's invariant on silent-line parity).
type Line struct {
	Subchannel efm.Symbol
	P1         [12]byte
	C2         [4]byte
	P2         [12]byte
	C1         [4]byte
}

// Bytes lays the line out in on-wire order.
func (l Line) Bytes() [FrameSize]byte {
	var out [FrameSize]byte
	copy(out[0:12], l.P1[:])
	copy(out[12:16], l.C2[:])
	copy(out[16:28], l.P2[:])
	copy(out[28:32], l.C1[:])
	return out
}

// pastLine is the 28-byte record the encoder's past ring keeps: P1, C2
// (inverted as stored on disc), P2 — the C1 message before C1's own
// parity is computed (spec §4.5 step 6: "push [P1, c2v, P2] into the
// past ring").
type pastLine [28]byte

func (p pastLine) p1(c int) byte { return p[c] }
func (p pastLine) c2(n int) byte { return p[12+n] }
func (p pastLine) p2(c int) byte { return p[16+c] }

// Encoder assembles raw sectors into CIRC lines and feeds them to an EFM
// sink, one frame per line (spec §4.5).
type Encoder struct {
	sink *efm.BitSink

	pending    [][SectorPayloadSize]byte
	subchannel [][SubchannelSize]byte

	past [pastRingSize]pastLine

	// OnLine, if set, is called with every line as it is emitted, before
	// EFM modulation — the hook the "-o, --output" raw line dump uses,
	// since the encoder otherwise only ever surfaces its output as
	// modulated channel bits.
	OnLine func(Line)
}

// NewEncoder returns an Encoder writing frames to sink, with its past
// ring pre-filled with silence (spec §3's "Lifecycles": "Past data is
// pre-filled with silence... so that startup emits valid (though
// garbage-prefixed) frames immediately").
func NewEncoder(sink *efm.BitSink) *Encoder {
	e := &Encoder{sink: sink}
	for i := range e.past {
		e.past[i] = pastLine{12: 0xFF, 13: 0xFF, 14: 0xFF, 15: 0xFF}
	}
	return e
}

// Queue enqueues one raw 2352-byte sector and its optional 96-byte
// subchannel (pass nil for silence), emitting as many complete 98-line
// sectors as the 3-sector buffer allows — at most one per call once
// warmed up (spec §4.5: "if fewer than 3 sectors buffered, return;
// otherwise produce exactly 98 output lines for the oldest buffered
// sector and then dequeue it").
func (e *Encoder) Queue(sector [SectorPayloadSize]byte, subchannel *[SubchannelSize]byte) {
	e.pending = append(e.pending, sector)
	var sc [SubchannelSize]byte
	if subchannel != nil {
		sc = *subchannel
	}
	e.subchannel = append(e.subchannel, sc)

	if len(e.pending) < futureSectorDepth {
		return
	}

	for i := 0; i < LinesPerSector; i++ {
		line := e.emitLine(i)
		if e.OnLine != nil {
			e.OnLine(line)
		}
		e.sink.PutFrame(line.Subchannel, byteSymbols(line.Bytes()))
		e.pushPast(line)
	}

	e.pending = e.pending[1:]
	e.subchannel = e.subchannel[1:]
}

func byteSymbols(b [FrameSize]byte) []efm.Symbol {
	out := make([]efm.Symbol, FrameSize)
	for i, v := range b {
		out[i] = efm.NewByteSymbol(v)
	}
	return out
}

// emitLine computes one full output line (subchannel symbol, P1, C2, P2,
// C1) for row i (0..97) of the sector currently at the front of the
// pending queue (spec §4.5 steps 1-6).
func (e *Encoder) emitLine(i int) Line {
	var line Line
	line.Subchannel = e.subchannelSymbol(i)

	for c := 0; c < 12; c++ {
		line.P1[c] = e.payloadByte(c, i)
	}
	for c := 12; c < 24; c++ {
		line.P2[c-12] = e.payloadByte(c, i)
	}

	var c2v [4]byte
	for n := 0; n < 4; n++ {
		msg := e.c2Input(i, delayedC2Locs[n])
		c2v[n] = rs.EncodeC2One(msg, n) ^ 0xFF
	}
	line.C2 = c2v

	var c2f [2]byte
	for n := 0; n < 2; n++ {
		loc := delayedC2Locs[n*2] + 1
		msg := e.c2Input(i, loc)
		c2f[n] = rs.EncodeC2One(msg, n*2)
	}

	insertDelay1 := [4]byte{c2f[0], c2v[1] ^ 0xFF, c2f[1], c2v[3] ^ 0xFF}
	msgDelay1 := e.c1Input(1, line.P1, line.P2, insertDelay1)
	line.C1[1] = rs.EncodeC1One(msgDelay1, 1) ^ 0xFF
	line.C1[3] = rs.EncodeC1One(msgDelay1, 3) ^ 0xFF

	prev := e.past[pastRingSize-1]
	insertDelay0 := [4]byte{c2v[0] ^ 0xFF, prev.c2(1) ^ 0xFF, c2v[2] ^ 0xFF, prev.c2(3) ^ 0xFF}
	msgDelay0 := e.c1Input(0, line.P1, line.P2, insertDelay0)
	line.C1[0] = rs.EncodeC1One(msgDelay0, 0) ^ 0xFF
	line.C1[2] = rs.EncodeC1One(msgDelay0, 2) ^ 0xFF

	return line
}

func (e *Encoder) subchannelSymbol(i int) efm.Symbol {
	switch i {
	case 0:
		return efm.S0
	case 1:
		return efm.S1
	default:
		return efm.NewByteSymbol(e.subchannel[0][i-2])
	}
}

// payloadByte reads a direct P1/P2 payload byte for overall column c
// (0..23) at sector row i, per the interleave table (spec §4.5 step 2).
func (e *Encoder) payloadByte(c, i int) byte {
	row := delayedLine[c] + i - delayedOffset
	return e.futureByte(row, swizzledColumn[c])
}

// futureByte resolves an absolute row (spanning the 3 buffered sectors)
// to a byte in the pending-sector queue.
func (e *Encoder) futureByte(row, col int) byte {
	slot := row / LinesPerSector
	localRow := row % LinesPerSector
	return e.pending[slot][localRow*24+col]
}

// c2Input gathers the 24-byte C2 message for one parity column's gather
// location loc (either delayedC2Locs[n] directly, or that plus 1 for the
// "future" lookahead C1 needs — spec §4.5 steps 3-4): columns 0..11 from
// the past ring, columns 12..23 from the buffered future sectors.
func (e *Encoder) c2Input(i, loc int) [24]byte {
	var msg [24]byte
	for c := 0; c < 12; c++ {
		row := pastRingSize - (delayedC2Data[c] - loc)
		msg[c] = e.past[row].p1(c)
	}
	for c := 12; c < 24; c++ {
		row := delayedLine[c] + i + (loc - delayedC2Data[c]) - delayedOffset
		msg[c] = e.futureByte(row, swizzledColumn[c])
	}
	return msg
}

// c1Input builds the 28-byte C1 message for one of the two delay passes
// (spec §4.5 step 5). pass selects the base delay formula: pass 1 is
// "delay = 1 - (c mod 2)" (even columns pull from the past ring, odd
// columns are this line's fresh payload); pass 0 is "delay = c mod 2"
// (the reverse), matching the decoder's column-parity rule run in
// opposite phase.
func (e *Encoder) c1Input(pass int, p1, p2 [12]byte, insert [4]byte) [28]byte {
	var msg [28]byte
	prev := e.past[pastRingSize-1]

	for c := 0; c < 12; c++ {
		if passDelay(c, pass) == 0 {
			msg[c] = p1[c]
		} else {
			msg[c] = prev.p1(c)
		}
	}
	copy(msg[12:16], insert[:])
	for c := 0; c < 12; c++ {
		if passDelay(c, pass) == 0 {
			msg[16+c] = p2[c]
		} else {
			msg[16+c] = prev.p2(c)
		}
	}
	return msg
}

func passDelay(c, pass int) int {
	if pass == 1 {
		return 1 - (c % 2)
	}
	return c % 2
}

func (e *Encoder) pushPast(line Line) {
	var row pastLine
	copy(row[0:12], line.P1[:])
	copy(row[12:16], line.C2[:])
	copy(row[16:28], line.P2[:])

	copy(e.past[0:pastRingSize-1], e.past[1:pastRingSize])
	e.past[pastRingSize-1] = row
}
