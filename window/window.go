// Package window resolves a partition's sector geometry into a byte range
// within a backing image and translates positions between window-relative
// ("logical") and file-relative ("physical") coordinates.
package window

import (
	"errors"
	"fmt"
	"io"
)

// SectorSize is the size of a logical sector in the legacy partition table.
const SectorSize = 512

// ErrInvalidWhence is returned for a seek mode other than io.SeekStart,
// io.SeekCurrent or io.SeekEnd. No underlying operation is attempted.
var ErrInvalidWhence = errors.New("invalid seek whence")

// Window is the contiguous byte range of one partition within a backing
// file. End is always Base+Size. A Window is resolved once and never
// modified afterwards.
type Window struct {
	Base uint64
	Size uint64
	End  uint64
}

// Resolve converts a partition's start sector and sector count into a byte
// range. It is a pure transform; geometry validation (nonzero start and
// count) happens at decode time, before a Window is ever constructed.
func Resolve(startSector, numSectors uint32) Window {
	base := uint64(startSector) * SectorSize
	size := uint64(numSectors) * SectorSize
	return Window{
		Base: base,
		Size: size,
		End:  base + size,
	}
}

// BoundsViolationError reports that the layer below the window handed back a
// position in front of the window base. There is no logical coordinate for
// such a position; callers must treat this as a broken invariant, not as a
// failed operation.
type BoundsViolationError struct {
	Physical int64
	Window   Window
}

func (e *BoundsViolationError) Error() string {
	return fmt.Sprintf("physical position %d escaped partition window [%d, %d)", e.Physical, e.Window.Base, e.Window.End)
}

// TranslateSeek maps a window-relative seek request onto the backing file:
//
//   - io.SeekStart: the physical target is offset+Base, silently capped at
//     the window end. Seeking past the end of the window is not an error,
//     mirroring the permissive seek-past-EOF semantic of regular files.
//   - io.SeekCurrent: passed through unmodified. No bounds are enforced for
//     relative seeks; this is a known limitation carried over deliberately.
//   - io.SeekEnd: resolves to an absolute seek to the window end. The offset
//     is ignored.
//
// The returned whence is the one to hand to the underlying seek, which is
// io.SeekStart for every mode except io.SeekCurrent.
func (w Window) TranslateSeek(offset int64, whence int) (physical int64, physicalWhence int, err error) {
	switch whence {
	case io.SeekStart:
		physical = offset + int64(w.Base)
		if physical > int64(w.End) {
			physical = int64(w.End)
		}
		return physical, io.SeekStart, nil
	case io.SeekCurrent:
		return offset, io.SeekCurrent, nil
	case io.SeekEnd:
		return int64(w.End), io.SeekStart, nil
	default:
		return 0, 0, ErrInvalidWhence
	}
}

// Logical maps a physical position returned by the backing file back into
// window-relative coordinates. A physical position in front of the window
// base cannot be represented and yields a BoundsViolationError.
func (w Window) Logical(physical int64) (int64, error) {
	if physical < int64(w.Base) {
		return 0, &BoundsViolationError{Physical: physical, Window: w}
	}
	return physical - int64(w.Base), nil
}

// Physical maps a window-relative position to its file-relative equivalent.
func (w Window) Physical(logical int64) int64 {
	return logical + int64(w.Base)
}

// Contains reports whether a physical position falls within the window,
// treating the end as included since a cursor may rest there.
func (w Window) Contains(physical int64) bool {
	return physical >= int64(w.Base) && physical <= int64(w.End)
}
