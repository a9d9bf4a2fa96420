package rs

import "retroio/cd/gf"

// Polynomial is a GF(2^8) polynomial, coefficients stored low-order first:
// Coefficient(i) is the coefficient of x^i. It backs the Berlekamp-Massey
// error-locator search and the Forney-syndrome fold (spec design note §9),
// which both need create/degree/coefficient/add/multiplyScalar/
// multiplyByMonomial/evaluate/inv as a small closed set of operations.
type Polynomial struct {
	// coeffs[i] is the coefficient of x^i. May contain trailing (high
	// order) zero coefficients; Degree() accounts for that.
	coeffs []byte
}

// NewPolynomial builds a polynomial from low-order-first coefficients.
func NewPolynomial(coeffs ...byte) *Polynomial {
	c := make([]byte, len(coeffs))
	copy(c, coeffs)
	return &Polynomial{coeffs: c}
}

// One is the multiplicative identity polynomial.
func One() *Polynomial {
	return NewPolynomial(1)
}

// Zero is the additive identity polynomial.
func Zero() *Polynomial {
	return NewPolynomial()
}

// Degree returns the highest power with a non-zero coefficient, or -1 for
// the zero polynomial. Unlike a naive implementation that trusts
// len(coeffs)-1, this walks down past trailing zero coefficients so a
// polynomial built with a zero leading term (a degenerate syndrome, per
// §9's correctness note) reports its true degree.
func (p *Polynomial) Degree() int {
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		if p.coeffs[i] != 0 {
			return i
		}
	}
	return -1
}

// Coefficient returns the coefficient of x^i, or 0 if i is out of range.
func (p *Polynomial) Coefficient(i int) byte {
	if i < 0 || i >= len(p.coeffs) {
		return 0
	}
	return p.coeffs[i]
}

// Add returns p + q (XOR of coefficients).
func (p *Polynomial) Add(q *Polynomial) *Polynomial {
	n := len(p.coeffs)
	if len(q.coeffs) > n {
		n = len(q.coeffs)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = gf.Add(p.Coefficient(i), q.Coefficient(i))
	}
	return &Polynomial{coeffs: out}
}

// MultiplyScalar returns s*p.
func (p *Polynomial) MultiplyScalar(s byte) *Polynomial {
	out := make([]byte, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = gf.Mul(c, s)
	}
	return &Polynomial{coeffs: out}
}

// MultiplyByMonomial returns coefficient*x^degree*p(x).
func (p *Polynomial) MultiplyByMonomial(degree int, coefficient byte) *Polynomial {
	if coefficient == 0 {
		return Zero()
	}
	out := make([]byte, len(p.coeffs)+degree)
	for i, c := range p.coeffs {
		out[i+degree] = gf.Mul(c, coefficient)
	}
	return &Polynomial{coeffs: out}
}

// Multiply returns the full polynomial product p*q.
func (p *Polynomial) Multiply(q *Polynomial) *Polynomial {
	if p.Degree() < 0 || q.Degree() < 0 {
		return Zero()
	}
	out := make([]byte, len(p.coeffs)+len(q.coeffs))
	for i, a := range p.coeffs {
		if a == 0 {
			continue
		}
		for j, b := range q.coeffs {
			out[i+j] = gf.Add(out[i+j], gf.Mul(a, b))
		}
	}
	return &Polynomial{coeffs: out}
}

// Evaluate computes p(x) via direct summation, sum_i c_i * x^i, rather than
// nested Horner multiplication: the spec's design note calls this out
// specifically, since the original polynomial library mis-evaluated
// degenerate syndromes (a stored parity byte of zero) under a
// sentinel-coefficient scheme. Direct summation has no such sentinel.
func (p *Polynomial) Evaluate(x byte) byte {
	var result byte
	xPow := byte(1)
	for _, c := range p.coeffs {
		result = gf.Add(result, gf.Mul(c, xPow))
		xPow = gf.Mul(xPow, x)
	}
	return result
}
