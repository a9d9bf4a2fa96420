// Package msf converts between Logical Block Addresses and the
// Minute:Second:Frame timecode the Red Book uses throughout subchannel-Q
// and sector headers, plus the packed-BCD encoding those fields are
// stored in on disc.
package msf

// FramesPerSecond is the CD's sector rate (§ GLOSSARY: "75 frames per
// second").
const FramesPerSecond = 75

// SecondsPerMinute is the plain wall-clock constant MSF timecodes use.
const SecondsPerMinute = 60

// MSF is a Minute:Second:Frame timecode.
type MSF struct {
	Minute byte
	Second byte
	Frame  byte
}

// FromLBA converts a Logical Block Address to its MSF timecode:
// LBA = frame + 75*second + 75*60*minute (GLOSSARY).
func FromLBA(lba int) MSF {
	f := lba % FramesPerSecond
	rest := lba / FramesPerSecond
	s := rest % SecondsPerMinute
	m := rest / SecondsPerMinute
	return MSF{Minute: byte(m), Second: byte(s), Frame: byte(f)}
}

// ToLBA recovers the Logical Block Address an MSF timecode denotes.
func ToLBA(t MSF) int {
	return int(t.Frame) + FramesPerSecond*int(t.Second) + FramesPerSecond*SecondsPerMinute*int(t.Minute)
}

// ToBCD packs a decimal value 0..99 into one byte, tens digit in the
// upper nibble, ones digit in the lower (the on-disc representation of
// every MSF field).
func ToBCD(n byte) byte {
	return (n/10)<<4 | (n % 10)
}

// FromBCD unpacks a byte holding two BCD digits back to its decimal
// value 0..99.
func FromBCD(b byte) byte {
	return (b>>4)*10 + (b & 0x0f)
}

// Bytes returns the timecode as three packed-BCD bytes, minute/second/
// frame, the order they appear in on disc.
func (t MSF) Bytes() [3]byte {
	return [3]byte{ToBCD(t.Minute), ToBCD(t.Second), ToBCD(t.Frame)}
}

// FromBytes reconstructs an MSF timecode from its three packed-BCD
// bytes.
func FromBytes(b [3]byte) MSF {
	return MSF{Minute: FromBCD(b[0]), Second: FromBCD(b[1]), Frame: FromBCD(b[2])}
}
