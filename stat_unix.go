//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris

package partfile

import (
	"golang.org/x/sys/unix"

	"github.com/partfile/partfile/identity"
	"github.com/partfile/partfile/window"
)

// FixupStat applies the window's size rewrite to a raw stat record. queryErr
// is the error from the stat call itself and is always returned unchanged;
// the record is only rewritten when the query succeeded, describes a regular
// file, and that file is the backing file.
func FixupStat(st *unix.Stat_t, queryErr error, win window.Window, id identity.FileIdentity) error {
	if queryErr != nil || st == nil {
		return queryErr
	}
	if uint32(st.Mode)&unix.S_IFMT != unix.S_IFREG {
		return nil
	}
	if id.IsZero() || !id.Matches(st) {
		return nil
	}
	st.Size = int64(win.Size)
	return nil
}

// StatPath queries metadata by path and applies the size rewrite.
func (f *File) StatPath(path string, st *unix.Stat_t) error {
	return FixupStat(st, unix.Stat(path, st), f.win, f.id)
}

// StatFd queries metadata by open descriptor and applies the size rewrite.
// By-path and by-descriptor queries go through the same fixup; the identity
// check is what keeps the rewrite scoped to the backing file.
func (f *File) StatFd(fd int, st *unix.Stat_t) error {
	return FixupStat(st, unix.Fstat(fd, st), f.win, f.id)
}
