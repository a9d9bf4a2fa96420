package rs

import "retroio/cd/gf"

// SyndromesAt evaluates codeword at an arbitrary set of generator root
// exponents. Syndromes is the common case of a contiguous alpha^0..
// alpha^(count-1) run; CIRC's C1 code instead splits its 4 roots across
// two delay passes, two roots each (spec §4.5's two-pass construction),
// which needs this more general form.
func SyndromesAt(codeword []byte, roots []int) []byte {
	poly := NewPolynomial(codeword...)
	syn := make([]byte, len(roots))
	for i, k := range roots {
		syn[i] = poly.Evaluate(gf.Exp(k))
	}
	return syn
}

// Syndromes evaluates codeword at alpha^0..alpha^(count-1), the RS
// generator's roots. A codeword that satisfies its parity checks
// evaluates to all-zero here; any non-zero entry signals at least one
// error (spec §4.2's "syndrome vector").
func Syndromes(codeword []byte, count int) []byte {
	roots := make([]int, count)
	for k := range roots {
		roots[k] = k
	}
	return SyndromesAt(codeword, roots)
}

// NonZero reports whether any syndrome is non-zero, i.e. whether the
// codeword it was computed from shows evidence of an error.
func NonZero(syndromes []byte) bool {
	for _, s := range syndromes {
		if s != 0 {
			return true
		}
	}
	return false
}

// erasureLocatorPolynomial builds sigma0(x) = product (1 + alpha^pos * x)
// over the given erasure positions (char-2 form of 1 - X_l*x).
func erasureLocatorPolynomial(positions []int) *Polynomial {
	p := One()
	for _, pos := range positions {
		p = p.Multiply(NewPolynomial(1, gf.Exp(pos)))
	}
	return p
}

// ForneySyndromes folds known erasure positions into the syndrome
// polynomial so Berlekamp-Massey only has to find the error locator for
// the *unknown* errors, per spec §4.2's "Erasure handling: given erasure
// positions as powers of alpha, fold them into Forney-modified syndromes."
func ForneySyndromes(syndromes []byte, erasurePositions []int) []byte {
	locator := erasureLocatorPolynomial(erasurePositions)
	product := NewPolynomial(syndromes...).Multiply(locator)

	n := len(erasurePositions)
	out := make([]byte, len(syndromes))
	for i := range out {
		out[i] = product.Coefficient(i + n)
	}
	return out
}

// BerlekampMassey computes the error-locator polynomial Lambda(x) from a
// syndrome sequence, per spec §4.2/§9. It does not attempt correction:
// callers use ChienSearch on the result to recover error positions only.
func BerlekampMassey(syndromes []byte) *Polynomial {
	c := One()
	b := One()
	l := 0
	m := 1
	lastDiscrepancy := byte(1)

	n := len(syndromes)
	for i := 0; i < n; i++ {
		delta := syndromes[i]
		for j := 1; j <= l; j++ {
			delta = gf.Add(delta, gf.Mul(c.Coefficient(j), syndromes[i-j]))
		}

		switch {
		case delta == 0:
			m++
		case 2*l <= i:
			t := c
			coef := gf.Mul(delta, gf.Inv(lastDiscrepancy))
			c = c.Add(b.MultiplyByMonomial(m, coef))
			l = i + 1 - l
			b = t
			lastDiscrepancy = delta
			m = 1
		default:
			coef := gf.Mul(delta, gf.Inv(lastDiscrepancy))
			c = c.Add(b.MultiplyByMonomial(m, coef))
			m++
		}
	}
	return c
}

// ChienSearchStrided generalizes ChienSearch to a root step other than 1:
// it finds the roots of locator among alpha^0, alpha^-step, alpha^-2*step,
// ..., the form needed when the syndromes that produced locator came from
// SyndromesAt with a step-spaced root set rather than a contiguous run
// (spec §4.5's two-pass C1 split, whose two roots per pass are 2 apart).
func ChienSearchStrided(locator *Polynomial, n, step int) []int {
	var positions []int
	for i := 0; i < n; i++ {
		if locator.Evaluate(gf.Exp(-step*i)) == 0 {
			positions = append(positions, i)
		}
	}
	return positions
}

// ChienSearch finds the roots of the error-locator polynomial among the
// first n inverse powers of alpha, returning the corresponding codeword
// positions (spec §4.2: "roots found by Chien search over alpha^0..alpha^31").
func ChienSearch(locator *Polynomial, n int) []int {
	return ChienSearchStrided(locator, n, 1)
}
