// Package rs implements the Reed-Solomon codes used by the CIRC codec:
// the specialized C1 (32,28) and C2 (28,24) matrix encoders, and the
// decode-side syndrome/Berlekamp-Massey/Chien helpers. Both encoders
// share one parity-check solver (computeParity, in linsolve.go) and
// cache their linear map as a constant matrix the way the reference
// implementation's `c1s`/`c2s` tables do, computed once at init instead
// of hand-transcribed, since no machine-readable copy of those exact
// tables survived retrieval (see DESIGN.md).
package rs

import "retroio/cd/gf"

const (
	// C1SymbolCount is n for the C1 (32,28) code.
	C1SymbolCount = 32
	// C1MessageCount is k for the C1 (32,28) code.
	C1MessageCount = 28
	// C1ParityCount is n-k for the C1 (32,28) code.
	C1ParityCount = 4

	// C2SymbolCount is n for the C2 (28,24) code.
	C2SymbolCount = 28
	// C2MessageCount is k for the C2 (28,24) code.
	C2MessageCount = 24
	// C2ParityCount is n-k for the C2 (28,24) code.
	C2ParityCount = 4

	// c2ParityStart is the position of the first C2 parity byte within
	// the 28-symbol C2 codeword: columns 12..15 (spec §3, §4.2).
	c2ParityStart = 12
)

// c1s[i][j] holds the exponent-domain coefficient plus one: a non-zero
// entry e means parity[j] ^= msg[i] * alpha^(e-1), and 0 means msg[i]
// does not contribute to parity[j] (spec §4.2's A1 matrix).
var c1s [C1MessageCount][C1ParityCount]byte

// c2s[i][j] is the equivalent matrix for C2, with parity placed mid-
// codeword (spec §4.2's A2 matrix).
var c2s [C2MessageCount][C2ParityCount]byte

func init() {
	dataPos := make([]int, C1MessageCount)
	parityPos := make([]int, C1ParityCount)
	for i := 0; i < C1MessageCount; i++ {
		dataPos[i] = i
	}
	for j := 0; j < C1ParityCount; j++ {
		parityPos[j] = C1MessageCount + j
	}
	fillMatrix(c1s[:], dataPos, parityPos)

	dataPos2 := make([]int, C2MessageCount)
	for i := 0; i < 12; i++ {
		dataPos2[i] = i
	}
	for i := 12; i < C2MessageCount; i++ {
		dataPos2[i] = i + C2ParityCount // skip the parity gap at 12..15
	}
	parityPos2 := make([]int, C2ParityCount)
	for j := 0; j < C2ParityCount; j++ {
		parityPos2[j] = c2ParityStart + j
	}
	fillMatrix(c2s[:], dataPos2, parityPos2)
}

// fillMatrix derives a constant linear-map matrix by feeding one unit
// vector through computeParity per row: RS encoding is GF-linear (spec
// invariant: C2[msg] xor C2[0] == C2[msg]), so the contribution of each
// data byte to each parity byte is itself fixed and independent of the
// other data bytes.
func fillMatrix(matrix [][C1ParityCount]byte, dataPos, parityPos []int) {
	unit := make([]byte, len(dataPos))
	for i := range dataPos {
		unit[i] = 1
		row := computeParity(dataPos, unit, parityPos)
		for j, v := range row {
			if v == 0 {
				matrix[i][j] = 0 // alpha^exponent is never 0; 0 sentinel means "no contribution"
			} else {
				matrix[i][j] = byte(gf.Log(v)) + 1 // +1 so 0 can mean "no contribution"
			}
		}
		unit[i] = 0
	}
}

// contribute applies one matrix-encoded data byte to an accumulating
// parity byte, undoing fillMatrix's +1 log-domain offset.
func contribute(parity, msgByte, encodedExponent byte) byte {
	if encodedExponent == 0 || msgByte == 0 {
		return parity
	}
	return gf.Add(parity, gf.Exp(int(encodedExponent)-1+gf.Log(msgByte)))
}

// EncodeC1 computes the 4 C1 parity bytes for a 28-byte message using the
// cached matrix c1s (spec §4.2).
func EncodeC1(msg [C1MessageCount]byte) [C1ParityCount]byte {
	var parity [C1ParityCount]byte
	for i := 0; i < C1MessageCount; i++ {
		for j := 0; j < C1ParityCount; j++ {
			parity[j] = contribute(parity[j], msg[i], c1s[i][j])
		}
	}
	return parity
}

// EncodeC2 computes the 4 C2 parity bytes for a 24-byte message, placed
// mid-codeword, using the cached matrix c2s (spec §4.2).
func EncodeC2(msg [C2MessageCount]byte) [C2ParityCount]byte {
	var parity [C2ParityCount]byte
	for i := 0; i < C2MessageCount; i++ {
		for j := 0; j < C2ParityCount; j++ {
			parity[j] = contribute(parity[j], msg[i], c2s[i][j])
		}
	}
	return parity
}

// EncodeC2One computes a single C2 parity byte, column n, for a 24-byte
// message. The CIRC encoder calls this once per column with a distinct
// gather for each column (§4.5 step 3-4), so computing all four outputs
// of EncodeC2 each time would discard three quarters of the work.
func EncodeC2One(msg [C2MessageCount]byte, n int) byte {
	var parity byte
	for i := 0; i < C2MessageCount; i++ {
		parity = contribute(parity, msg[i], c2s[i][n])
	}
	return parity
}

// EncodeC1One computes a single C1 parity byte, column n, for a 28-byte
// message, the C1 analogue of EncodeC2One.
func EncodeC1One(msg [C1MessageCount]byte, n int) byte {
	var parity byte
	for i := 0; i < C1MessageCount; i++ {
		parity = contribute(parity, msg[i], c1s[i][n])
	}
	return parity
}
