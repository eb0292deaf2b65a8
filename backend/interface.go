// Package backend abstracts the storage a disk image lives on, so the rest
// of the library can work against files, block devices, or test stubs alike.
package backend

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

var (
	// ErrIncorrectOpenMode the image was opened read-only but a write was requested
	ErrIncorrectOpenMode = errors.New("disk file or device not open for write")
	// ErrNotSuitable the underlying storage cannot provide the requested capability
	ErrNotSuitable = errors.New("backing file is not suitable")
)

// File is the read surface every consumer of an image needs: sequential and
// positional reads, seeking, and metadata.
type File interface {
	fs.File
	io.ReaderAt
	io.Seeker
	io.Closer
}

// WritableFile is a File that also accepts positional writes.
type WritableFile interface {
	File
	io.WriterAt
}

// Storage is an open disk image or device.
type Storage interface {
	File
	// Sys returns the OS-level file, for identity capture and ioctl-style calls
	Sys() (*os.File, error)
	// Writable returns the write surface, if the storage was opened for writing
	Writable() (WritableFile, error)
}
