//go:build !aix && !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !solaris
// +build !aix,!darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!solaris

package identity

import (
	"io/fs"
	"os"
)

// FileIdentity is the (device, inode) pair of the backing file. This
// platform has no way to capture it; every query yields the zero identity,
// which never matches anything, so size fixup quietly never applies.
type FileIdentity struct {
	Dev uint64
	Ino uint64
}

func FromFile(f *os.File) (FileIdentity, error) {
	return FileIdentity{}, nil
}

func FromPath(path string) (FileIdentity, error) {
	return FileIdentity{}, nil
}

func FromFileInfo(fi fs.FileInfo) (FileIdentity, bool) {
	return FileIdentity{}, false
}

func (id FileIdentity) IsZero() bool {
	return id == FileIdentity{}
}
