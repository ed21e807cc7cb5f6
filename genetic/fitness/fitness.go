// Package fitness defines ordered score values for the genetic engine
package fitness

import (
	"cmp"
	"fmt"
	"math"
)

// Pair is a two-component score compared lexicographically, higher is better
type Pair struct {
	Primary   int `json:"primary"`
	Secondary int `json:"secondary"`
}

func (p Pair) Compare(other Pair) int {
	if c := cmp.Compare(p.Primary, other.Primary); c != 0 {
		return c
	}
	return cmp.Compare(p.Secondary, other.Secondary)
}

// Float sums both components, used for pool statistics
func (p Pair) Float() float64 {
	return float64(p.Primary) + float64(p.Secondary)
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d, %d)", p.Primary, p.Secondary)
}

// Scalar is a single float score, NaN ranks below every number
type Scalar float64

func (s Scalar) Compare(other Scalar) int {
	return cmp.Compare(s, other)
}

func (s Scalar) Float() float64 {
	if math.IsNaN(float64(s)) {
		return 0
	}
	return float64(s)
}

func (s Scalar) String() string {
	return fmt.Sprintf("%g", float64(s))
}

// Max returns the better of a and b, a on ties
func Max[F interface{ Compare(F) int }](a, b F) F {
	if b.Compare(a) > 0 {
		return b
	}
	return a
}

// Min returns the worse of a and b, a on ties
func Min[F interface{ Compare(F) int }](a, b F) F {
	if b.Compare(a) < 0 {
		return b
	}
	return a
}
