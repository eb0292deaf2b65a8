// Package partfile presents a single primary partition of a raw disk image
// as if it were a file of its own: positions and reported sizes are
// translated between partition-relative and image-relative coordinates, so a
// consumer written against a raw block device can run against a whole-disk
// image instead.
package partfile

import (
	"io"
	"io/fs"

	log "github.com/sirupsen/logrus"

	"github.com/partfile/partfile/backend"
	"github.com/partfile/partfile/backend/file"
	"github.com/partfile/partfile/identity"
	"github.com/partfile/partfile/partition/mbr"
	"github.com/partfile/partfile/window"
)

const (
	logicalSectorSize  = 512
	physicalSectorSize = 512
)

// File is a view of one partition of a disk image. Seek positions are
// partition-relative, Stat reports the partition's length, and reads stop at
// the partition end. The zero value is not usable; construct one with Open,
// New or FromEnv.
type File struct {
	storage   backend.Storage
	win       window.Window
	id        identity.FileIdentity
	partition *mbr.Partition
}

// Open opens the disk image at path read-only and resolves the window for
// the given 1-based primary partition number.
func Open(path string, partNum int) (*File, error) {
	storage, err := file.OpenFromPath(path, true)
	if err != nil {
		return nil, err
	}
	f, err := New(storage, partNum)
	if err != nil {
		storage.Close()
		return nil, err
	}
	return f, nil
}

// New resolves a partition window over an already-open storage. The caller
// keeps ownership of the storage on error, and hands it over on success.
func New(storage backend.Storage, partNum int) (*File, error) {
	table, err := mbr.Read(storage, logicalSectorSize, physicalSectorSize)
	if err != nil {
		return nil, err
	}
	p, err := table.GetPartition(partNum)
	if err != nil {
		return nil, err
	}
	win := window.Resolve(p.Start, p.Size)

	// park the cursor at the window base, so the first Read starts at
	// logical 0 instead of wherever reading the table left the backing file
	if _, err := storage.Seek(int64(win.Base), io.SeekStart); err != nil {
		return nil, err
	}

	// identity capture only works when the storage is a real OS file;
	// without it, Stat results pass through without the size rewrite
	var id identity.FileIdentity
	if osFile, serr := storage.Sys(); serr == nil {
		if id, err = identity.FromFile(osFile); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"partition": partNum,
		"base":      win.Base,
		"size":      win.Size,
		"end":       win.End,
	}).Debug("partition window resolved")

	return &File{
		storage:   storage,
		win:       win,
		id:        id,
		partition: p,
	}, nil
}

// Window returns the resolved byte range of the partition.
func (f *File) Window() window.Window {
	return f.win
}

// Identity returns the captured identity of the backing file. It is zero
// when the storage is not an OS file.
func (f *File) Identity() identity.FileIdentity {
	return f.id
}

// Partition returns the decoded table entry backing this view.
func (f *File) Partition() *mbr.Partition {
	return f.partition
}

// Seek sets the cursor in partition-relative coordinates. io.SeekStart
// targets past the partition end are capped at the end rather than failing;
// io.SeekEnd always lands on the partition end. io.SeekCurrent deltas are
// handed to the backing file unchecked, a limitation carried over from the
// original design. Errors from the backing file propagate unchanged.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	physical, physicalWhence, err := f.win.TranslateSeek(offset, whence)
	if err != nil {
		return 0, err
	}
	pos, err := f.storage.Seek(physical, physicalWhence)
	if err != nil {
		return pos, err
	}
	logical, err := f.win.Logical(pos)
	if err != nil {
		// the backing file reported a position in front of the window; any
		// logical position we made up would silently corrupt the consumer
		log.Fatalf("seek escaped the partition window: %v", err)
	}
	return logical, nil
}

// Read reads from the current cursor, stopping at the partition end.
func (f *File) Read(b []byte) (int, error) {
	pos, err := f.storage.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	logical, err := f.win.Logical(pos)
	if err != nil {
		log.Fatalf("read cursor escaped the partition window: %v", err)
	}
	remaining := int64(f.win.Size) - logical
	if remaining <= 0 {
		return 0, io.EOF
	}
	if int64(len(b)) > remaining {
		b = b[:remaining]
	}
	return f.storage.Read(b)
}

// ReadAt reads len(b) bytes at the partition-relative offset off. Reads
// reaching past the partition end are truncated and return io.EOF.
func (f *File) ReadAt(b []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fs.ErrInvalid
	}
	short := false
	if remaining := int64(f.win.Size) - off; remaining < int64(len(b)) {
		if remaining <= 0 {
			return 0, io.EOF
		}
		b = b[:remaining]
		short = true
	}
	n, err := f.storage.ReadAt(b, f.win.Physical(off))
	if err == nil && short {
		err = io.EOF
	}
	return n, err
}

// Stat reports the backing file's metadata with the size rewritten to the
// partition's length, provided the file matches the captured identity.
func (f *File) Stat() (fs.FileInfo, error) {
	fi, err := f.storage.Stat()
	if err != nil || fi == nil {
		return fi, err
	}
	return FixupFileInfo(fi, f.win, f.id), nil
}

// Allocate accepts a space-reservation request for the partition and reports
// success without reserving anything. Reservation inside the window is an
// acknowledged incomplete feature, not an enforced one.
func (f *File) Allocate(offset, length int64) error {
	return nil
}

// Close closes the backing storage.
func (f *File) Close() error {
	return f.storage.Close()
}

// backend.File interface guard
var _ backend.File = (*File)(nil)
