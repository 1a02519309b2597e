package cpu

// Flag is the result of the last comparison.
// Exactly one of EQUAL, GREATER or LESS is set after a CMP; the values are
// distinct bits but are never combined.
type Flag byte

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_NONE    = Flag(0b000) // none
	FLAG_EQUAL   = Flag(0b001) // equal
	FLAG_GREATER = Flag(0b010) // greater
	FLAG_LESS    = Flag(0b100) // less
)

// compare returns the flag for the strict ordering of a against b.
func compare(a, b byte) Flag {
	switch {
	case a < b:
		return FLAG_LESS
	case a > b:
		return FLAG_GREATER
	default:
		return FLAG_EQUAL
	}
}
