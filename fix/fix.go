// Package fix implements the 16.16 fixed-point scalar used for entity
// positions and speeds.
package fix

import (
	"math"
	"strconv"
)

// Fix32 is a signed 16.16 fixed-point value.
type Fix32 int32

const (
	Shift = 16
	One   Fix32 = 1 << Shift
	Half  Fix32 = 1 << (Shift - 1)
	Mask        = int32(One) - 1

	// MaxInt and MinInt bound the whole-pixel range a Fix32 can hold.
	MaxInt = math.MaxInt16
	MinInt = math.MinInt16
)

func FromInt(i int) Fix32         { return Fix32(int32(i) << Shift) }
func FromFloat(f float64) Fix32   { return Fix32(f * float64(One)) }
func (f Fix32) Float() float64    { return float64(f) / float64(One) }
func (f Fix32) Frac() Fix32       { return Fix32(int32(f) & Mask) }
func (f Fix32) Add(o Fix32) Fix32 { return f + o }
func (f Fix32) Sub(o Fix32) Fix32 { return f - o }

// Int truncates to whole pixels. The shift is arithmetic, so negative values
// round toward negative infinity.
func (f Fix32) Int() int { return int(int32(f) >> Shift) }

// Round returns the nearest whole pixel, halves rounding up.
func (f Fix32) Round() int { return int((int32(f) + int32(Half)) >> Shift) }

// Mul multiplies two fixed-point values, widening to 64 bits for the product.
func Mul(a, b Fix32) Fix32 {
	return Fix32((int64(a) * int64(b)) >> Shift)
}

// Div divides a by b. Division by zero yields zero.
func Div(a, b Fix32) Fix32 {
	if b == 0 {
		return 0
	}
	return Fix32((int64(a) << Shift) / int64(b))
}

func (f Fix32) String() string {
	return strconv.FormatFloat(f.Float(), 'f', -1, 64)
}
