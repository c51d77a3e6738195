package dual

import (
	"math"
	"strconv"
	"strings"
)

// Array is the numeric container behind a Number. A length-1 Array behaves
// as a scalar and broadcasts against an Array of any length; otherwise both
// operands of an element-wise operation must have the same length.
type Array []float64

func (a Array) Clone() Array {
	if a == nil {
		return nil
	}
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) Len() int { return len(a) }

// Item returns the single element of a scalar Array. It panics if the Array
// does not hold exactly one element.
func (a Array) Item() float64 {
	if len(a) != 1 {
		panic(&OpError{Op: "item", Value: a, Err: ErrShapeMismatch})
	}
	return a[0]
}

func (a Array) IsValid() bool {
	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (a Array) Norm() float64 {
	sum := 0.0
	for _, v := range a {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (a Array) Add(b Array) Array { return zip("add", a, b, func(x, y float64) float64 { return x + y }) }
func (a Array) Sub(b Array) Array { return zip("sub", a, b, func(x, y float64) float64 { return x - y }) }
func (a Array) Mul(b Array) Array { return zip("mul", a, b, func(x, y float64) float64 { return x * y }) }
func (a Array) Div(b Array) Array { return zip("div", a, b, func(x, y float64) float64 { return x / y }) }

func (a Array) Scale(factor float64) Array {
	return a.Map(func(x float64) float64 { return x * factor })
}

func (a Array) Pow(n float64) Array {
	return a.Map(func(x float64) float64 { return math.Pow(x, n) })
}

func (a Array) Neg() Array {
	return a.Map(func(x float64) float64 { return -x })
}

func (a Array) Map(fn func(float64) float64) Array {
	result := make(Array, len(a))
	for i, v := range a {
		result[i] = fn(v)
	}
	return result
}

// Any reports whether pred holds for at least one element.
func (a Array) Any(pred func(float64) bool) bool {
	for _, v := range a {
		if pred(v) {
			return true
		}
	}
	return false
}

// Equal reports whether a and b have the same length and identical elements.
func (a Array) Equal(b Array) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// All reports whether rel holds for every broadcast pair of elements. Arrays
// that cannot be broadcast together compare false.
func (a Array) All(b Array, rel func(x, y float64) bool) bool {
	n, ok := broadcastLen(a, b)
	if !ok {
		return false
	}
	for i := 0; i < n; i++ {
		if !rel(a.at(i), b.at(i)) {
			return false
		}
	}
	return true
}

func (a Array) String() string {
	if len(a) == 1 {
		return formatFloat(a[0])
	}
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = formatFloat(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// broadcastTo expands a to length n. a must have length 1 or n.
func (a Array) broadcastTo(n int) Array {
	if len(a) == n {
		return a.Clone()
	}
	result := make(Array, n)
	for i := range result {
		result[i] = a[0]
	}
	return result
}

func (a Array) at(i int) float64 {
	if len(a) == 1 {
		return a[0]
	}
	return a[i]
}

func broadcastLen(a, b Array) (int, bool) {
	switch {
	case len(a) == len(b):
		return len(a), true
	case len(a) == 1:
		return len(b), true
	case len(b) == 1:
		return len(a), true
	}
	return 0, false
}

func zip(op string, a, b Array, fn func(x, y float64) float64) Array {
	n, ok := broadcastLen(a, b)
	if !ok {
		panic(&OpError{Op: op, Value: a.Clone(), Err: ErrShapeMismatch})
	}
	result := make(Array, n)
	for i := range result {
		result[i] = fn(a.at(i), b.at(i))
	}
	return result
}

func zeros(n int) Array {
	return make(Array, n)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
