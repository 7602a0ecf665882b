// Package numeral converts integers in the range 1-3999 into Roman numerals.
//
// Conversion walks the decimal digits of the input from the units upwards.
// Each digit maps to a symbol group built from the one/five/ten letters of its
// position, and each new group is placed to the left of the groups already
// produced, so the most significant digits end up first:
//
//	n, err := numeral.Convert(1994)
//	fmt.Println(n) // MCMXCIV
//
// Callers that have already validated their input can use MustConvert, which
// panics instead of returning an error.
package numeral

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsamuelsen11/numeral-service/internal/domain"
)

// Bounds of the supported input range and of the produced text.
const (
	MinValue = 1
	MaxValue = 3999

	// MaxLength is the length of the longest numeral in range (3888, MMMDCCCLXXXVIII).
	MaxLength = 15
)

// ErrOutOfRange is matched by every error returned for input outside
// [MinValue, MaxValue].
var ErrOutOfRange = errors.New("value out of range")

// OutOfRangeError reports the rejected input. It matches both ErrOutOfRange
// and domain.ErrValidation with errors.Is.
type OutOfRangeError struct {
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d is not between %d and %d", ErrOutOfRange.Error(), e.Value, MinValue, MaxValue)
}

func (e *OutOfRangeError) Unwrap() []error {
	return []error{ErrOutOfRange, domain.ErrValidation}
}

// Numeral is an immutable Roman numeral for exactly one integer in
// [MinValue, MaxValue]. The zero value holds no numeral and is never returned
// by a successful conversion.
//
// Numerals are comparable and can be used as map keys; equality follows the
// text. Compare orders by text as well, which does not follow numeric order
// ("C" sorts before "II").
type Numeral struct {
	text string
}

// Convert returns the canonical Roman numeral for n.
// It returns an *OutOfRangeError when n is outside [MinValue, MaxValue].
func Convert(n int) (Numeral, error) {
	if n < MinValue || n > MaxValue {
		return Numeral{}, &OutOfRangeError{Value: n}
	}
	return Numeral{text: build(n)}, nil
}

// MustConvert is like Convert but panics with the *OutOfRangeError when n is
// out of range.
func MustConvert(n int) Numeral {
	num, err := Convert(n)
	if err != nil {
		panic(err)
	}
	return num
}

// String returns the numeral text.
func (n Numeral) String() string {
	return n.text
}

// Len returns the number of symbols in the numeral.
func (n Numeral) Len() int {
	return len(n.text)
}

// IsZero reports whether n is the zero Numeral.
func (n Numeral) IsZero() bool {
	return n.text == ""
}

// Compare orders numerals by their text, returning -1, 0 or +1.
func (n Numeral) Compare(other Numeral) int {
	return strings.Compare(n.text, other.text)
}

// MarshalText implements encoding.TextMarshaler so numerals encode as plain
// strings in JSON and YAML.
func (n Numeral) MarshalText() ([]byte, error) {
	return []byte(n.text), nil
}

// symbols holds the letters used for one decimal position.
type symbols struct {
	one, five, ten byte
}

// positions lists units, tens and hundreds. Thousands only have a "one"
// letter and are handled after the loop.
var positions = [...]symbols{
	{one: 'I', five: 'V', ten: 'X'},
	{one: 'X', five: 'L', ten: 'C'},
	{one: 'C', five: 'D', ten: 'M'},
}

// maxGroupLength is the longest group a single digit produces (8 -> VIII).
const maxGroupLength = 4

// build fills a fixed buffer from the right, one decimal position at a time.
// n must already be in range.
func build(n int) string {
	var buf [MaxLength]byte
	i := len(buf)

	for _, sym := range positions {
		var scratch [maxGroupLength]byte
		group := sym.appendDigit(scratch[:0], n%10)
		i -= len(group)
		copy(buf[i:], group)
		n /= 10
	}

	thousands := n % 10
	if thousands > 3 {
		panic(fmt.Sprintf("numeral: thousands digit %d is unreachable below %d", thousands, MaxValue+1))
	}
	for range thousands {
		i--
		buf[i] = 'M'
	}

	return string(buf[i:])
}

// appendDigit appends the symbol group for decimal digit d to dst.
func (s symbols) appendDigit(dst []byte, d int) []byte {
	switch d {
	case 0:
		return dst
	case 1, 2, 3:
		return appendRepeat(dst, s.one, d)
	case 4:
		return append(dst, s.one, s.five)
	case 5, 6, 7, 8:
		return appendRepeat(append(dst, s.five), s.one, d-5)
	case 9:
		return append(dst, s.one, s.ten)
	default:
		panic(fmt.Sprintf("numeral: %d is not a decimal digit", d))
	}
}

func appendRepeat(dst []byte, c byte, count int) []byte {
	for range count {
		dst = append(dst, c)
	}
	return dst
}
