package partfile

import (
	"io/fs"

	"github.com/partfile/partfile/identity"
	"github.com/partfile/partfile/window"
)

// sizedFileInfo reports the partition length instead of the backing file's
// true size. Every other field delegates to the real FileInfo.
type sizedFileInfo struct {
	fs.FileInfo
	size int64
}

func (fi sizedFileInfo) Size() int64 {
	return fi.size
}

// FixupFileInfo rewrites the reported size of a stat result to the window
// length iff the result describes a regular file whose device+inode pair
// matches the captured identity of the backing file. Any other result,
// including one for an unrelated file opened by the same process, passes
// through untouched.
func FixupFileInfo(fi fs.FileInfo, win window.Window, id identity.FileIdentity) fs.FileInfo {
	if fi == nil || !fi.Mode().IsRegular() {
		return fi
	}
	queried, ok := identity.FromFileInfo(fi)
	if !ok || id.IsZero() || queried != id {
		return fi
	}
	return sizedFileInfo{FileInfo: fi, size: int64(win.Size)}
}
