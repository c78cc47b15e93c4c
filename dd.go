package geom

import "math"

// Double-double arithmetic: a value is the unevaluated sum of two floats, with the low word tracking the rounding error of the high word for roughly 106 bits of precision. All operations return new values.

type dd struct {
	hi, lo float64
}

// ddSplit is 2^27+1, used to split a float into two 26-bit halves for exact multiplication.
const ddSplit = 134217729.0

func ddFloat(x float64) dd {
	return dd{x, 0.0}
}

func (x dd) Float() float64 {
	return x.hi + x.lo
}

func (x dd) Neg() dd {
	return dd{-x.hi, -x.lo}
}

func (x dd) Add(y dd) dd {
	S := x.hi + y.hi
	T := x.lo + y.lo
	e := S - x.hi
	f := T - x.lo
	s := S - e
	t := T - f
	s = (y.hi - e) + (x.hi - s)
	t = (y.lo - f) + (x.lo - t)
	e = s + T
	H := S + e
	h := e + (S - H)
	e = t + h
	hi := H + e
	lo := e + (H - hi)
	return dd{hi, lo}
}

func (x dd) Sub(y dd) dd {
	return x.Add(y.Neg())
}

func (x dd) Mul(y dd) dd {
	C := ddSplit * x.hi
	hx := C - x.hi
	c := ddSplit * y.hi
	hx = C - hx
	tx := x.hi - hx
	hy := c - y.hi
	C = x.hi * y.hi
	hy = c - hy
	ty := y.hi - hy
	c = ((((hx*hy - C) + hx*ty) + tx*hy) + tx*ty) + (x.hi*y.lo + x.lo*y.hi)
	hi := C + c
	lo := c + (C - hi)
	return dd{hi, lo}
}

func (x dd) Div(y dd) dd {
	C := x.hi / y.hi
	c := ddSplit * C
	hc := c - C
	u := ddSplit * y.hi
	hc = c - hc
	tc := C - hc
	hy := u - y.hi
	U := C * y.hi
	hy = u - hy
	ty := y.hi - hy
	u = (((hc*hy - U) + hc*ty) + tc*hy) + tc*ty
	c = ((((x.hi - U) - u) + x.lo) - C*y.lo) / y.hi
	u = C + c
	return dd{u, (C - u) + c}
}

func (x dd) Finite() bool {
	return !math.IsNaN(x.hi) && !math.IsInf(x.hi, 0)
}

func (x dd) Signum() int {
	if x.hi > 0.0 || x.hi == 0.0 && x.lo > 0.0 {
		return 1
	} else if x.hi < 0.0 || x.hi == 0.0 && x.lo < 0.0 {
		return -1
	}
	return 0
}
