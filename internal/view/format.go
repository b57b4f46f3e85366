package view

import (
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode/utf8"
)

// PadRune fills decorated value text on the left so one- and two-digit
// values line up. U+2007 FIGURE SPACE is non-breaking and as wide as a digit.
const PadRune = '\u2007'

// PaddedWidth is the display width, in runes, of decorated value text.
const PaddedWidth = 5

// FormatFixed renders x with exactly two decimals: 7.1 -> "7.10".
// Exact ties round away from zero (53.125 -> "53.13"), like JavaScript's
// toFixed. Non-finite values render as NaN, Infinity and -Infinity.
func FormatFixed(x float64) string {
	if s, ok := nonFinite(x); ok {
		return s
	}
	if math.Abs(x) >= 1e21 {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}

	// floor(|x|*100 + 1/2) on the exact binary value of x.
	r := new(big.Rat).SetFloat64(math.Abs(x))
	r.Mul(r, big.NewRat(100, 1))
	r.Add(r, big.NewRat(1, 2))
	digits := padLeft(new(big.Int).Quo(r.Num(), r.Denom()).String(), 3, '0')

	s := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if x < 0 {
		s = "-" + s
	}
	return s
}

// FormatRounded renders x rounded to the nearest integer (halves round up,
// toward +Inf) and zero-padded to two digits: 7.1 -> "07", 53.071 -> "53".
func FormatRounded(x float64) string {
	if s, ok := nonFinite(x); ok {
		return s
	}
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	if r == 0 {
		r = 0
	}
	return padLeft(strconv.FormatFloat(r, 'f', 0, 64), 2, '0')
}

// FormatPadded renders FormatFixed(x) left-padded with PadRune to
// PaddedWidth runes: 7.1 -> "7.10" with one leading pad, 53.071 -> "53.07".
// Longer values are returned unpadded, never truncated.
func FormatPadded(x float64) string {
	return padLeft(FormatFixed(x), PaddedWidth, PadRune)
}

func nonFinite(x float64) (string, bool) {
	switch {
	case math.IsNaN(x):
		return "NaN", true
	case math.IsInf(x, 1):
		return "Infinity", true
	case math.IsInf(x, -1):
		return "-Infinity", true
	}
	return "", false
}

func padLeft(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return strings.Repeat(string(pad), width-n) + s
}
