package efm

// FrameSyncPattern is the 24 raw channel bits prefixed to every frame, in
// emission order: bit 0 is the first channel bit put on the wire, bit 23
// the last (spec §4.3/§4.4). Written as three set bits rather than a
// binary literal because EFM symbols are consistently LSB-first
// throughout this package, and a literal would invite misreading its
// digits as emission order when they are actually MSB-first.
//
// The pattern carries two consecutive 10-zero runs (channel bit 1
// through 10, and 12 through 21): the maximum run the d=2/k=10 code
// allows, twice in a row. No legal data codeword sequence can produce
// that, which is what makes the pattern reliably findable mid-stream.
const FrameSyncPattern uint32 = 1<<0 | 1<<11 | 1<<22

// frameSyncBits is the width of FrameSyncPattern.
const frameSyncBits = 24

// DataSymbolsPerFrame is the number of data/parity symbols following the
// control symbol in one frame (spec §4.1's 588-bit frame layout: sync +
// merge + control symbol + 32 data symbols, each carrying its own merge
// bits).
const DataSymbolsPerFrame = 32

// BitSink accumulates raw (pre-NRZ-I) EFM channel bits into NRZ-I-encoded
// output bytes, selecting merge bits between consecutive symbols per the
// four-way rule in §4.4. It is continuous across the whole channel bit
// stream: the merge-bit state (last two raw bits emitted, NRZ-I phase)
// persists across frame boundaries exactly as it does on the physical
// disc, so frames must be written to one BitSink in sequence.
type BitSink struct {
	out      []byte
	bitBuf   byte
	bitCount int

	nrziState byte
	lastFew   byte
}

// NewBitSink returns a BitSink ready to encode the start of a new channel
// bit stream.
func NewBitSink() *BitSink {
	return &BitSink{}
}

// PutFrame emits one full 588-bit frame: merge bits leading into the
// fixed sync pattern, the sync pattern itself, the control symbol
// (ordinarily a data byte carrying the subcode, or S0/S1 for the first
// two frames of a subcode block), and the 32 data/parity symbols, each
// preceded by its own selected merge bits.
func (s *BitSink) PutFrame(control Symbol, data []Symbol) {
	syncNext := byte(FrameSyncPattern & 0b11)
	s.putMergeBits(mergeBits(s.lastFew, syncNext))
	s.putRaw(FrameSyncPattern, frameSyncBits)
	s.putSymbol(control)
	for _, sym := range data {
		s.putSymbol(sym)
	}
}

// putSymbol selects merge bits against the symbol about to be emitted,
// then emits the merge bits followed by the symbol's 14 raw channel
// bits.
func (s *BitSink) putSymbol(sym Symbol) {
	pattern := patternFor(sym)
	next := byte(pattern & 0b11)
	s.putMergeBits(mergeBits(s.lastFew, next))
	s.putRaw(uint32(pattern), symbolBits)
}

// mergeBits implements the selector: given the last two raw bits already
// on the channel and the first two raw bits of what comes next, choose
// the 3 merge bits that keep the d=2/k=10 run-length constraint across
// the junction (§4.4).
func mergeBits(lastFew, next byte) [3]byte {
	v := (lastFew << 2) | (next & 0b11)
	switch {
	case v&0b0101 == 0:
		return [3]byte{0, 1, 0}
	case v == 0b0001:
		return [3]byte{1, 0, 0}
	case v == 0b0100:
		return [3]byte{0, 0, 1}
	default:
		return [3]byte{0, 0, 0}
	}
}

func (s *BitSink) putMergeBits(bits [3]byte) {
	for _, b := range bits {
		s.emitRaw(b)
	}
}

// putRaw emits the low n bits of v, bit 0 first: every pattern in this
// package, sync included, is indexed so bit 0 is the first channel bit
// emitted.
func (s *BitSink) putRaw(v uint32, n int) {
	for i := 0; i < n; i++ {
		s.emitRaw(byte((v >> uint(i)) & 1))
	}
}

func (s *BitSink) emitRaw(bit byte) {
	if bit == 1 {
		s.nrziState ^= 1
	}
	s.bitBuf |= s.nrziState << uint(s.bitCount)
	s.bitCount++
	if s.bitCount == 8 {
		s.out = append(s.out, s.bitBuf)
		s.bitBuf = 0
		s.bitCount = 0
	}
	s.lastFew = ((s.lastFew << 1) | bit) & 0b11
}

// Finish flushes any partial trailing byte (padded with the current NRZ-I
// level, so the padding adds no transition) and returns the
// accumulated NRZ-I channel bytes, packed LSB-first per byte (§6: "EFM
// binary output... packed bits, LSB-first in each byte"). The sink may
// continue to be used afterwards; Finish only drains what has been
// produced so far.
func (s *BitSink) Finish() []byte {
	if s.bitCount > 0 {
		for i := s.bitCount; i < 8; i++ {
			s.bitBuf |= s.nrziState << uint(i)
		}
		s.out = append(s.out, s.bitBuf)
		s.bitBuf = 0
		s.bitCount = 0
	}
	out := s.out
	s.out = nil
	return out
}
