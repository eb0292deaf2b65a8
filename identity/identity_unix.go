//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package identity

import (
	"io/fs"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// FileIdentity is the (device, inode) pair of the backing file, captured
// once at initialization and immutable afterwards.
type FileIdentity struct {
	Dev uint64
	Ino uint64
}

// FromFile captures the identity of an open file by descriptor.
func FromFile(f *os.File) (FileIdentity, error) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return FileIdentity{}, &os.PathError{Op: "fstat", Path: f.Name(), Err: err}
	}
	return FileIdentity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}

// FromPath captures the identity of the file at the given path.
func FromPath(path string) (FileIdentity, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return FileIdentity{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return FileIdentity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, nil
}

// FromFileInfo extracts an identity from an os.Stat / File.Stat result. The
// second return is false when the platform-specific data is unavailable,
// e.g. for synthetic FileInfo implementations.
func FromFileInfo(fi fs.FileInfo) (FileIdentity, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok || st == nil {
		return FileIdentity{}, false
	}
	return FileIdentity{Dev: uint64(st.Dev), Ino: uint64(st.Ino)}, true
}

// Matches reports whether the queried stat record refers to the same file as
// this identity.
func (id FileIdentity) Matches(st *unix.Stat_t) bool {
	return uint64(st.Dev) == id.Dev && uint64(st.Ino) == id.Ino
}

// IsZero reports whether the identity was never captured.
func (id FileIdentity) IsZero() bool {
	return id == FileIdentity{}
}
