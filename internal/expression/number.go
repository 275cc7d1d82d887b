package expression

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number is the value of an evaluated expression: an integer, or a float
// once a true division is involved.
type Number struct {
	isFloat bool
	i       int64
	f       float64
}

func Int(v int64) Number {
	return Number{i: v}
}

func Float(v float64) Number {
	return Number{isFloat: true, f: v}
}

func (n Number) IsFloat() bool {
	return n.isFloat
}

func (n Number) Int64() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Float64() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n Number) IsZero() bool {
	return n.Float64() == 0
}

// String formats integers without a fraction and floats with at least one
// fractional digit, e.g. "11", "2.0" and "1000000.0". Floats below 1e-4 or
// from 1e16 on use an exponent, e.g. "1e+16".
func (n Number) String() string {
	if !n.isFloat {
		return strconv.FormatInt(n.i, 10)
	}

	if abs := math.Abs(n.f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(n.f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(n.f, 'f', -1, 64)
	if strings.ContainsAny(s, ".IN") { // fraction, Inf or NaN
		return s
	}
	return s + ".0"
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.isFloat {
		if math.IsInf(n.f, 0) || math.IsNaN(n.f) {
			return nil, fmt.Errorf("unsupported number for JSON: %s", n)
		}
		return []byte(strconv.FormatFloat(n.f, 'g', -1, 64)), nil
	}
	return []byte(strconv.FormatInt(n.i, 10)), nil
}

// add, sub and mul report false when an integer result overflows int64.
func (n Number) add(o Number) (Number, bool) {
	if !n.isFloat && !o.isFloat {
		r := n.i + o.i
		if (o.i > 0 && r < n.i) || (o.i < 0 && r > n.i) {
			return Number{}, false
		}
		return Int(r), true
	}
	return Float(n.Float64() + o.Float64()), true
}

func (n Number) sub(o Number) (Number, bool) {
	if !n.isFloat && !o.isFloat {
		r := n.i - o.i
		if (o.i > 0 && r > n.i) || (o.i < 0 && r < n.i) {
			return Number{}, false
		}
		return Int(r), true
	}
	return Float(n.Float64() - o.Float64()), true
}

func (n Number) mul(o Number) (Number, bool) {
	if !n.isFloat && !o.isFloat {
		if n.i == 0 || o.i == 0 {
			return Int(0), true
		}
		if (n.i == -1 && o.i == math.MinInt64) || (o.i == -1 && n.i == math.MinInt64) {
			return Number{}, false
		}
		r := n.i * o.i
		if r/o.i != n.i {
			return Number{}, false
		}
		return Int(r), true
	}
	return Float(n.Float64() * o.Float64()), true
}

func (n Number) div(o Number) Number {
	return Float(n.Float64() / o.Float64())
}
