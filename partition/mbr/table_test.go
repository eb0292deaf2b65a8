package mbr_test

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/partfile/partfile/partition/mbr"
	"github.com/partfile/partfile/testhelper"
)

// testSector builds a boot sector with a single Linux partition at sector
// 2048 of 204800 sectors.
func testSector() []byte {
	b := make([]byte, 512)
	e := b[446:462]
	e[4] = byte(mbr.Linux)
	binary.LittleEndian.PutUint32(e[8:12], 2048)
	binary.LittleEndian.PutUint32(e[12:16], 204800)
	b[510] = 0x55
	b[511] = 0xaa
	return b
}

func TestTableType(t *testing.T) {
	table := &mbr.Table{}
	if tableType := table.Type(); tableType != "mbr" {
		t.Errorf("Type() returned unexpected table type, actual %s expected %s", tableType, "mbr")
	}
}

func TestTableRead(t *testing.T) {
	t.Run("error reading file", func(t *testing.T) {
		expected := "error reading MBR from file"
		f := &testhelper.FileImpl{
			//nolint:revive // b is unused, but we keep it here for the consistent io.Reader signature
			Reader: func(b []byte, offset int64) (int, error) {
				return 0, errors.New(expected)
			},
		}
		table, err := mbr.Read(f, 512, 512)
		if table != nil {
			t.Errorf("returned table instead of nil")
		}
		if err == nil {
			t.Fatalf("returned nil error instead of actual errors")
		}
		if !strings.HasPrefix(err.Error(), expected) {
			t.Errorf("error type %s instead of expected %s", err.Error(), expected)
		}
	})
	t.Run("insufficient data read", func(t *testing.T) {
		size := 100
		expected := fmt.Sprintf("read only %d bytes of MBR", size)
		f := &testhelper.FileImpl{
			//nolint:revive // b is unused, but we keep it here for the consistent io.Reader signature
			Reader: func(b []byte, offset int64) (int, error) {
				return size, nil
			},
		}
		table, err := mbr.Read(f, 512, 512)
		if table != nil {
			t.Errorf("returned table instead of nil")
		}
		if err == nil {
			t.Fatalf("returned nil error instead of actual errors")
		}
		if !strings.HasPrefix(err.Error(), expected) {
			t.Errorf("error type %s instead of expected %s", err.Error(), expected)
		}
	})
	t.Run("successful read", func(t *testing.T) {
		sector := testSector()
		f := &testhelper.FileImpl{
			Reader: func(b []byte, offset int64) (int, error) {
				return copy(b, sector[offset:]), nil
			},
		}
		table, err := mbr.Read(f, 512, 512)
		if err != nil {
			t.Fatalf("returned error %v instead of nil", err)
		}
		if table == nil {
			t.Fatal("returned nil instead of table")
		}
		p := table.Partitions[0]
		if p.Type != mbr.Linux || p.Start != 2048 || p.Size != 204800 {
			t.Errorf("decoded entry type %02x start %d size %d instead of %02x 2048 204800", byte(p.Type), p.Start, p.Size, byte(mbr.Linux))
		}
	})
}

func TestTableWrite(t *testing.T) {
	t.Run("error writing file", func(t *testing.T) {
		table := &mbr.Table{}
		expected := "error writing partition table to disk"
		f := &testhelper.FileImpl{
			//nolint:revive // b is unused, but we keep it here for the consistent io.Writer signature
			Writer: func(b []byte, offset int64) (int, error) {
				return 0, errors.New(expected)
			},
		}
		err := table.Write(f, 10*1024*1024)
		if err == nil {
			t.Fatalf("returned nil error instead of actual errors")
		}
		if !strings.HasPrefix(err.Error(), expected) {
			t.Errorf("error type %s instead of expected %s", err.Error(), expected)
		}
	})
	t.Run("insufficient data written", func(t *testing.T) {
		table := &mbr.Table{}
		var size int
		f := &testhelper.FileImpl{
			Writer: func(b []byte, offset int64) (int, error) {
				size = len(b) - 1
				return size, nil
			},
		}
		err := table.Write(f, 10*1024*1024)
		expected := fmt.Sprintf("partition table wrote %d bytes to disk", size)
		if err == nil {
			t.Fatalf("returned nil error instead of actual errors")
		}
		if !strings.HasPrefix(err.Error(), expected) {
			t.Errorf("error type %s instead of expected %s", err.Error(), expected)
		}
	})
	t.Run("successful write", func(t *testing.T) {
		table := &mbr.Table{
			LogicalSectorSize:  512,
			PhysicalSectorSize: 512,
			Partitions: []*mbr.Partition{
				{Bootable: true, Type: mbr.Linux, Start: 2048, Size: 204800},
			},
		}
		var tableBytes []byte
		f := &testhelper.FileImpl{
			Writer: func(b []byte, offset int64) (int, error) {
				switch offset {
				case 446:
					tableBytes = append(tableBytes, b...)
				default:
					t.Fatalf("attempted to write at position %d instead of %d", offset, 446)
				}
				return len(b), nil
			},
		}
		if err := table.Write(f, 10*1024*1024); err != nil {
			t.Fatalf("returned error %v instead of nil", err)
		}
		expected := testSector()
		expected[446] = 0x80 // bootable
		if !mbr.PartitionEqualBytes(tableBytes[0:16], expected[446:462]) {
			t.Errorf("mismatched first entry:\n%v\n%v", tableBytes[0:16], expected[446:462])
		}
		if !bytes.Equal(tableBytes[64:66], []byte{0x55, 0xaa}) {
			t.Errorf("mismatched boot signature %v", tableBytes[64:66])
		}
	})
	t.Run("disk signature write", func(t *testing.T) {
		table := &mbr.Table{DiskSignature: 0xa1b2c3d4}
		writes := map[int64][]byte{}
		f := &testhelper.FileImpl{
			Writer: func(b []byte, offset int64) (int, error) {
				writes[offset] = append([]byte{}, b...)
				return len(b), nil
			},
		}
		if err := table.Write(f, 10*1024*1024); err != nil {
			t.Fatalf("returned error %v instead of nil", err)
		}
		sig, ok := writes[440]
		if !ok {
			t.Fatal("no write at the disk signature offset")
		}
		if got := binary.LittleEndian.Uint32(sig); got != 0xa1b2c3d4 {
			t.Errorf("signature written as %08x instead of a1b2c3d4", got)
		}
	})
}

func TestGetPartitionStartSize(t *testing.T) {
	sector := testSector()
	f := &testhelper.FileImpl{
		Reader: func(b []byte, offset int64) (int, error) {
			return copy(b, sector[offset:]), nil
		},
	}
	table, err := mbr.Read(f, 512, 512)
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	start, err := table.GetPartitionStart(1)
	if err != nil {
		t.Fatalf("GetPartitionStart: %v", err)
	}
	if start != 2048 {
		t.Errorf("start %d instead of 2048", start)
	}
	size, err := table.GetPartitionSize(1)
	if err != nil {
		t.Fatalf("GetPartitionSize: %v", err)
	}
	if size != 204800 {
		t.Errorf("size %d instead of 204800", size)
	}
}

func TestReadPartitionContents(t *testing.T) {
	p := &mbr.Partition{Type: mbr.Linux, Start: 2048, Size: 204800}
	var b bytes.Buffer
	writer := bufio.NewWriter(&b)
	size := 100
	b2 := make([]byte, size)
	_, _ = rand.Read(b2)
	f := &testhelper.FileImpl{
		//nolint:revive // b is unused, but we keep it here for the consistent io.Reader signature
		Reader: func(b []byte, offset int64) (int, error) {
			copy(b, b2)
			return size, io.EOF
		},
	}
	read, err := p.ReadContents(f, writer)
	if read != int64(size) {
		t.Errorf("returned %d bytes read instead of %d", read, size)
	}
	if err != nil {
		t.Errorf("error was not nil: %v", err)
	}
	writer.Flush()
	if !bytes.Equal(b.Bytes(), b2) {
		t.Errorf("mismatched bytes data")
		t.Log(b.Bytes())
		t.Log(b2)
	}
}

func TestWritePartitionContents(t *testing.T) {
	p := &mbr.Partition{Type: mbr.Linux, Start: 2048, Size: 8}
	size := p.Size * 512
	b := make([]byte, size)
	_, _ = rand.Read(b)
	reader := bytes.NewReader(b)
	b2 := make([]byte, 0, size)
	f := &testhelper.FileImpl{
		//nolint:revive // b is unused, but we keep it here for the consistent io.Writer signature
		Writer: func(b []byte, offset int64) (int, error) {
			b2 = append(b2, b...)
			return len(b), nil
		},
	}
	written, err := p.WriteContents(f, reader)
	if written != uint64(size) {
		t.Errorf("returned %d bytes written instead of %d", written, size)
	}
	if err != nil {
		t.Errorf("error was not nil: %v", err)
	}
	if !bytes.Equal(b2, b) {
		t.Errorf("bytes mismatch")
	}
}

func TestWritePartitionContentsOverflow(t *testing.T) {
	p := &mbr.Partition{Type: mbr.Linux, Start: 2048, Size: 1}
	b := make([]byte, 2*512)
	_, _ = rand.Read(b)
	f := &testhelper.FileImpl{
		Writer: func(b []byte, offset int64) (int, error) {
			return len(b), nil
		},
	}
	_, err := p.WriteContents(f, bytes.NewReader(b))
	if err == nil {
		t.Error("writing past the partition size should fail")
	}
}
