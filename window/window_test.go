package window_test

import (
	"errors"
	"io"
	"testing"

	"github.com/partfile/partfile/window"
)

func TestResolve(t *testing.T) {
	t.Run("known geometry", func(t *testing.T) {
		win := window.Resolve(2048, 204800)
		if win.Base != 1048576 {
			t.Errorf("base was %d instead of %d", win.Base, 1048576)
		}
		if win.Size != 104857600 {
			t.Errorf("size was %d instead of %d", win.Size, 104857600)
		}
		if win.End != 105906176 {
			t.Errorf("end was %d instead of %d", win.End, 105906176)
		}
	})
	t.Run("end is always base plus size", func(t *testing.T) {
		geometries := []struct {
			start uint32
			count uint32
		}{
			{1, 1},
			{2048, 204800},
			{63, 80325},
			{4294967295, 4294967295},
		}
		for _, g := range geometries {
			win := window.Resolve(g.start, g.count)
			if win.End != win.Base+win.Size {
				t.Errorf("resolve(%d, %d): end %d is not base %d + size %d", g.start, g.count, win.End, win.Base, win.Size)
			}
		}
	})
	t.Run("pure function", func(t *testing.T) {
		first := window.Resolve(2048, 204800)
		second := window.Resolve(2048, 204800)
		if first != second {
			t.Errorf("two resolutions of the same geometry differ: %v vs %v", first, second)
		}
	})
}

func TestTranslateSeek(t *testing.T) {
	win := window.Resolve(2048, 204800)

	t.Run("absolute in window", func(t *testing.T) {
		for _, offset := range []int64{0, 1, 512, int64(win.Size)} {
			physical, whence, err := win.TranslateSeek(offset, io.SeekStart)
			if err != nil {
				t.Fatalf("offset %d: unexpected error %v", offset, err)
			}
			if whence != io.SeekStart {
				t.Errorf("offset %d: whence %d instead of io.SeekStart", offset, whence)
			}
			if physical != offset+int64(win.Base) {
				t.Errorf("offset %d: physical %d instead of %d", offset, physical, offset+int64(win.Base))
			}
		}
	})
	t.Run("absolute past the end clamps", func(t *testing.T) {
		physical, _, err := win.TranslateSeek(int64(win.Size)+1000000, io.SeekStart)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if physical != int64(win.End) {
			t.Errorf("physical %d instead of window end %d", physical, win.End)
		}
	})
	t.Run("relative passes through", func(t *testing.T) {
		for _, offset := range []int64{-5000000, -1, 0, 1, 5000000} {
			physical, whence, err := win.TranslateSeek(offset, io.SeekCurrent)
			if err != nil {
				t.Fatalf("offset %d: unexpected error %v", offset, err)
			}
			if whence != io.SeekCurrent {
				t.Errorf("offset %d: whence %d instead of io.SeekCurrent", offset, whence)
			}
			if physical != offset {
				t.Errorf("offset %d: delta changed to %d", offset, physical)
			}
		}
	})
	t.Run("end of window", func(t *testing.T) {
		physical, whence, err := win.TranslateSeek(-100, io.SeekEnd)
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if whence != io.SeekStart {
			t.Errorf("whence %d instead of io.SeekStart", whence)
		}
		if physical != int64(win.End) {
			t.Errorf("physical %d instead of window end %d", physical, win.End)
		}
	})
	t.Run("invalid whence", func(t *testing.T) {
		_, _, err := win.TranslateSeek(0, 42)
		if !errors.Is(err, window.ErrInvalidWhence) {
			t.Errorf("error %v instead of ErrInvalidWhence", err)
		}
	})
}

func TestLogical(t *testing.T) {
	win := window.Resolve(2048, 204800)

	t.Run("round trip over the window", func(t *testing.T) {
		for _, logical := range []int64{0, 1, 511, 512, int64(win.Size) - 1, int64(win.Size)} {
			physical := win.Physical(logical)
			back, err := win.Logical(physical)
			if err != nil {
				t.Fatalf("logical %d: unexpected error %v", logical, err)
			}
			if back != logical {
				t.Errorf("logical %d came back as %d via physical %d", logical, back, physical)
			}
		}
	})
	t.Run("position in front of the base", func(t *testing.T) {
		_, err := win.Logical(int64(win.Base) - 1)
		var bv *window.BoundsViolationError
		if !errors.As(err, &bv) {
			t.Fatalf("error %v instead of BoundsViolationError", err)
		}
		if bv.Physical != int64(win.Base)-1 {
			t.Errorf("violation reported physical %d instead of %d", bv.Physical, int64(win.Base)-1)
		}
	})
}

func TestContains(t *testing.T) {
	win := window.Resolve(2, 4)
	tests := []struct {
		physical int64
		expected bool
	}{
		{0, false},
		{int64(win.Base) - 1, false},
		{int64(win.Base), true},
		{int64(win.Base) + 1, true},
		{int64(win.End), true},
		{int64(win.End) + 1, false},
	}
	for _, tt := range tests {
		if got := win.Contains(tt.physical); got != tt.expected {
			t.Errorf("Contains(%d) was %v instead of %v", tt.physical, got, tt.expected)
		}
	}
}
