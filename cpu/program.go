package cpu

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

// Listing is a line of assembled code with its source location and
// generated bytes.
type Listing struct {
	LineNo int
	Ip     int
	Words  []string
	Bytes  []byte
}

type Program struct {
	Listings []Listing
}

type Debug struct {
	*Listing
	Index int
}

func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Listings {
		if ip >= op.Ip && ip < op.Ip+len(op.Bytes) {
			dbg = Debug{
				Listing: &prog.Listings[n],
				Index:   ip - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the program as a memory image.
func (prog *Program) Binary() (bins []byte) {
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

func (prog *Program) Codes() iter.Seq2[int, byte] {
	return func(yield func(ip int, code byte) bool) {
		for _, op := range prog.Listings {
			for n, code := range op.Bytes {
				if !yield(op.Ip+n, code) {
					return
				}
			}
		}
	}
}

// WriteImage writes the program in the text image format: one 8 digit
// binary byte per line, with the source of each listing as a comment.
func (prog *Program) WriteImage(w io.Writer) (err error) {
	for _, op := range prog.Listings {
		for n, code := range op.Bytes {
			line := fmt.Sprintf("%08b", code)
			if n == 0 {
				line += fmt.Sprintf(" # %02X: %v", op.Ip, strings.Join(op.Words, " "))
			}
			_, err = fmt.Fprintln(w, line)
			if err != nil {
				return
			}
		}
	}

	return
}
