// Package loader reads LS-8 program images.
//
// An image is a text file with one byte per line, written as a binary
// literal of up to 8 digits. A '#' starts a comment that runs to the end
// of the line, and lines that are empty after removing the comment are
// skipped.
package loader

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

const (
	IMAGE_SIZE  = 256 // Largest image, in bytes.
	BYTE_DIGITS = 8   // Most binary digits in a byte literal.
)

// Image is a loaded program image.
type Image struct {
	Name   string // Source name of the image.
	Data   []byte // Bytes, to be placed at address zero.
	LineNo []int  // Source line of each byte.
}

// LineOf returns the source line of the byte at ip, or zero.
func (img *Image) LineOf(ip int) int {
	if ip < 0 || ip >= len(img.LineNo) {
		return 0
	}
	return img.LineNo[ip]
}

// Parse reads a program image.
func Parse(input io.Reader) (img *Image, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			img = nil
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	img = &Image{}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		text, _, _ := strings.Cut(line, "#")
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		if len(text) > BYTE_DIGITS {
			err = ErrParseBinary(text)
			return
		}

		var value uint64
		value, err = strconv.ParseUint(text, 2, 8)
		if err != nil {
			err = ErrParseBinary(text)
			return
		}

		if len(img.Data) == IMAGE_SIZE {
			err = ErrImageTooLarge
			return
		}

		img.Data = append(img.Data, byte(value))
		img.LineNo = append(img.LineNo, lineno)
	}

	err = scanner.Err()

	return
}

// Open reads a program image from a file.
func Open(path string) (img *Image, err error) {
	inf, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		err = ErrNotFound(path)
		return
	}
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = Parse(inf)
	if err != nil {
		return
	}

	img.Name = path

	return
}
