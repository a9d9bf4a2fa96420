// Package gf implements GF(2^8) arithmetic over the Red Book's primitive
// polynomial 0x11D (x^8 + x^4 + x^3 + x^2 + 1), the field every Reed-Solomon
// stage in the CIRC codec (package rs) is built on.
//
// Grounded on the generator-polynomial table in
// doismellburning-samoyed/src/fx25_init.go, whose RS(255,k) variants all
// use genpoly 0x11d, the identical CD primitive polynomial.
package gf

const (
	// Primitive is the CD primitive polynomial x^8+x^4+x^3+x^2+1.
	Primitive = 0x11D

	// Order is the number of non-zero elements in the field.
	Order = 255
)

var (
	expTable [2 * Order]byte // doubled so Exp never needs a modulo
	logTable [256]byte
)

func init() {
	x := byte(1)
	for i := 0; i < Order; i++ {
		expTable[i] = x
		logTable[x] = byte(i)

		// Multiply x by the generator element (alpha = 2), reducing
		// modulo the primitive polynomial whenever the top bit carries.
		hi := x&0x80 != 0
		x <<= 1
		if hi {
			x ^= byte(Primitive & 0xFF)
		}
	}
	for i := Order; i < 2*Order; i++ {
		expTable[i] = expTable[i-Order]
	}
	// log(0) is undefined; callers must never look it up.
	logTable[0] = 0
}

// Add returns a⊕b, the field addition (and subtraction) operator.
func Add(a, b byte) byte {
	return a ^ b
}

// Sub is identical to Add in characteristic 2.
func Sub(a, b byte) byte {
	return Add(a, b)
}

// Mul returns a·b using the log/exp tables.
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return expTable[int(logTable[a])+int(logTable[b])]
}

// Log returns the discrete log of a (a = alpha^Log(a)). a must be non-zero;
// Log(0) is a programming error and is not checked here, per the field's
// contract (callers MUST check for 0 themselves).
func Log(a byte) int {
	return int(logTable[a])
}

// Exp returns alpha^i for any i, positive or negative, reducing the
// exponent mod 255. Sums of two logs (as used by Mul) stay within
// [0, 2*Order) and hit the doubled table directly without the modulo.
func Exp(i int) byte {
	if i >= 0 && i < 2*Order {
		return expTable[i]
	}
	m := i % Order
	if m < 0 {
		m += Order
	}
	return expTable[m]
}

// Inv returns the multiplicative inverse of a. Inv(0) is a programming
// error and panics.
func Inv(a byte) byte {
	if a == 0 {
		panic("gf: Inv(0) is undefined")
	}
	return expTable[Order-int(logTable[a])]
}

// Pow returns a^n for non-negative n.
func Pow(a byte, n int) byte {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	return Exp(Log(a) * n)
}
