package rs

import "retroio/cd/gf"

// solveLinear solves A*x = b over GF(2^8) for a square system, by Gaussian
// elimination with partial pivoting (any non-zero pivot; the field has no
// notion of magnitude). A copy is made internally so callers keep their
// own matrix untouched.
func solveLinear(a [][]byte, b []byte) []byte {
	n := len(b)

	m := make([][]byte, n)
	for i := range a {
		row := make([]byte, n+1)
		copy(row, a[i])
		row[n] = b[i]
		m[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for row := col; row < n; row++ {
			if m[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot < 0 {
			panic("rs: singular matrix in solveLinear")
		}
		m[col], m[pivot] = m[pivot], m[col]

		inv := gf.Inv(m[col][col])
		for k := col; k <= n; k++ {
			m[col][k] = gf.Mul(m[col][k], inv)
		}

		for row := 0; row < n; row++ {
			if row == col || m[row][col] == 0 {
				continue
			}
			factor := m[row][col]
			for k := col; k <= n; k++ {
				m[row][k] = gf.Add(m[row][k], gf.Mul(factor, m[col][k]))
			}
		}
	}

	x := make([]byte, n)
	for i := 0; i < n; i++ {
		x[i] = m[i][n]
	}
	return x
}

// computeParity finds the r parity bytes at positions parityPos within a
// systematic RS codeword, given the data bytes already placed at
// dataPos, so that the codeword evaluated at alpha^0..alpha^(r-1)
// (the RS generator's roots) vanishes — the parity-check condition.
//
// This single routine backs the C1 end-of-codeword encoder and the
// C2 skewed mid-codeword encoder alike (spec §4.2): the only difference
// between them is where parityPos sits relative to dataPos. Solving the
// Vandermonde system directly is the closed-form equivalent of polynomial
// long division — both produce the unique codeword satisfying the same r
// parity-check constraints — and it naturally handles a parity run that
// isn't at the end, which division alone cannot (the reason the spec
// calls out a dedicated "skewed matrix" for C2 at all).
func computeParity(dataPos []int, dataVal []byte, parityPos []int) []byte {
	r := len(parityPos)

	target := make([]byte, r)
	for k := 0; k < r; k++ {
		alphaK := gf.Exp(k)
		var sum byte
		for i, pos := range dataPos {
			sum = gf.Add(sum, gf.Mul(dataVal[i], gf.Pow(alphaK, pos)))
		}
		target[k] = sum
	}

	vander := make([][]byte, r)
	for k := 0; k < r; k++ {
		alphaK := gf.Exp(k)
		row := make([]byte, r)
		for j, pos := range parityPos {
			row[j] = gf.Pow(alphaK, pos)
		}
		vander[k] = row
	}

	return solveLinear(vander, target)
}
