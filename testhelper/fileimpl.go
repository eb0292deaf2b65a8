// Package testhelper provides stub file implementations, so tests can drive
// the library with injected read, write and seek behavior instead of real
// disk images.
package testhelper

import (
	"fmt"
	"io/fs"
)

type reader func(b []byte, offset int64) (int, error)
type writer func(b []byte, offset int64) (int, error)
type seeker func(offset int64, whence int) (int64, error)

// FileImpl implements github.com/partfile/partfile/backend File and
// WritableFile from injectable hooks. Hooks that a test does not set fail
// loudly when hit.
type FileImpl struct {
	Reader reader
	Writer writer
	Seeker seeker
	Info   fs.FileInfo
}

func (f *FileImpl) Stat() (fs.FileInfo, error) {
	return f.Info, nil
}

func (f *FileImpl) Read(b []byte) (int, error) {
	return f.Reader(b, 0)
}

func (f *FileImpl) Close() error {
	return nil
}

// ReadAt read at a particular offset
func (f *FileImpl) ReadAt(b []byte, offset int64) (int, error) {
	return f.Reader(b, offset)
}

// WriteAt write at a particular offset
func (f *FileImpl) WriteAt(b []byte, offset int64) (int, error) {
	return f.Writer(b, offset)
}

// Seek seek to a particular offset, if the test provided a Seeker hook
func (f *FileImpl) Seek(offset int64, whence int) (int64, error) {
	if f.Seeker == nil {
		return 0, fmt.Errorf("FileImpl does not implement Seek()")
	}
	return f.Seeker(offset, whence)
}
