package loader

import (
	"errors"
	"io/fs"

	"github.com/ezrec/ls8/translate"
)

var f = translate.From

var (
	ErrProgramNotFound = errors.New(f("program not found"))
	ErrImageTooLarge   = errors.New(f("image too large"))
)

// ErrNotFound names a program image file that does not exist.
type ErrNotFound string

func (err ErrNotFound) Error() string {
	return f("the file %v does not exist, please enter a valid file name", string(err))
}

func (err ErrNotFound) Is(target error) bool {
	return target == ErrProgramNotFound || target == fs.ErrNotExist
}

type ErrParseBinary string

func (err ErrParseBinary) Error() string {
	return f("'%v' is not an 8 bit binary number", string(err))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
