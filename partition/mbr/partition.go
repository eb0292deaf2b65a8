package mbr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/partfile/partfile/backend"
	"github.com/partfile/partfile/partition/part"
)

// Partition represents a single partition entry in the table.
// The CHS start/end fields are carried through untouched; nothing in this
// library interprets disk geometry beyond the LBA start and sector count.
type Partition struct {
	Bootable      bool
	StartHead     byte
	StartSector   byte
	StartCylinder byte
	Type          Type
	EndHead       byte
	EndSector     byte
	EndCylinder   byte
	Start         uint32 // Start first sector of the partition, LBA
	Size          uint32 // Size number of sectors in the partition
	// we need this for calculating absolute byte positions on the disk
	logicalSectorSize  int
	physicalSectorSize int
	// index of the entry in the table, 1-based, and the table's disk signature,
	// so we can report a stable PARTUUID-style identifier
	index         int
	diskSignature uint32
}

// PartitionEqualBytes compares two partition entries by their on-disk bytes,
// ignoring the CHS geometry fields, which many tools fill with dummy values.
func PartitionEqualBytes(b1, b2 []byte) bool {
	if (b1 == nil && b2 != nil) || (b2 == nil && b1 != nil) {
		return false
	}
	if b1 == nil && b2 == nil {
		return true
	}
	if len(b1) != partitionEntrySize || len(b2) != partitionEntrySize {
		return false
	}
	return b1[0] == b2[0] &&
		b1[4] == b2[4] &&
		bytes.Equal(b1[8:12], b2[8:12]) &&
		bytes.Equal(b1[12:16], b2[12:16])
}

// Equal compares if another partition is equal to this one, ignoring CHS
// start and end, and ignoring which table the entries came from.
func (p *Partition) Equal(o *Partition) bool {
	if o == nil {
		return false
	}
	return p.Bootable == o.Bootable &&
		p.Type == o.Type &&
		p.Start == o.Start &&
		p.Size == o.Size
}

// partitionFromBytes decodes a single 16-byte entry. The LBA start and sector
// count are little-endian on disk regardless of host byte order.
func partitionFromBytes(b []byte, logicalSectorSize, physicalSectorSize int) (*Partition, error) {
	if len(b) != partitionEntrySize {
		return nil, fmt.Errorf("data for partition was %d bytes instead of expected %d", len(b), partitionEntrySize)
	}

	var bootable bool
	switch b[0] {
	case 0x00:
		bootable = false
	case 0x80:
		bootable = true
	default:
		return nil, fmt.Errorf("invalid partition boot flag 0x%02x", b[0])
	}

	return &Partition{
		Bootable:           bootable,
		StartHead:          b[1],
		StartSector:        b[2],
		StartCylinder:      b[3],
		Type:               Type(b[4]),
		EndHead:            b[5],
		EndSector:          b[6],
		EndCylinder:        b[7],
		Start:              binary.LittleEndian.Uint32(b[8:12]),
		Size:               binary.LittleEndian.Uint32(b[12:16]),
		logicalSectorSize:  logicalSectorSize,
		physicalSectorSize: physicalSectorSize,
	}, nil
}

// toBytes encodes the entry to its 16-byte on-disk form.
func (p *Partition) toBytes() []byte {
	b := make([]byte, partitionEntrySize)
	if p.Bootable {
		b[0] = 0x80
	}
	b[1] = p.StartHead
	b[2] = p.StartSector
	b[3] = p.StartCylinder
	b[4] = byte(p.Type)
	b[5] = p.EndHead
	b[6] = p.EndSector
	b[7] = p.EndCylinder
	binary.LittleEndian.PutUint32(b[8:12], p.Start)
	binary.LittleEndian.PutUint32(b[12:16], p.Size)
	return b
}

// GetSize returns the size of the partition in sectors.
func (p *Partition) GetSize() int64 {
	return int64(p.Size)
}

// GetStart returns the first sector of the partition.
func (p *Partition) GetStart() int64 {
	return int64(p.Start)
}

// UUID returns the PARTUUID-style identifier for the partition, composed of
// the table's disk signature and the 1-based entry index, e.g. "a1b2c3d4-02".
func (p *Partition) UUID() string {
	return fmt.Sprintf("%08x-%02d", p.diskSignature, p.index)
}

// sectorSizes returns the effective logical and physical sector sizes,
// defaulting for entries constructed directly rather than read from disk.
func (p *Partition) sectorSizes() (logical, physical int) {
	logical = p.logicalSectorSize
	if logical == 0 {
		logical = SectorSize
	}
	physical = p.physicalSectorSize
	if physical == 0 {
		physical = SectorSize
	}
	return logical, physical
}

// ReadContents reads the contents of the partition from the disk image into
// an io.Writer, returning the number of bytes read.
func (p *Partition) ReadContents(f backend.File, out io.Writer) (int64, error) {
	logical, physical := p.sectorSizes()
	total := int64(0)
	size := int64(p.Size) * int64(logical)
	start := int64(p.Start) * int64(logical)
	b := make([]byte, physical)
	for total < size {
		chunk := int64(len(b))
		if size-total < chunk {
			chunk = size - total
		}
		read, err := f.ReadAt(b[:chunk], start+total)
		if read > 0 {
			if _, werr := out.Write(b[:read]); werr != nil {
				return total, fmt.Errorf("error writing partition contents: %v", werr)
			}
			total += int64(read)
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, fmt.Errorf("error reading from file: %v", err)
		}
	}
	return total, nil
}

// WriteContents fills the partition with the contents of an io.Reader,
// returning the number of bytes written. The reader must not provide more
// bytes than the partition holds.
func (p *Partition) WriteContents(f backend.WritableFile, contents io.Reader) (uint64, error) {
	logical, physical := p.sectorSizes()
	total := uint64(0)
	size := uint64(p.Size) * uint64(logical)
	start := uint64(p.Start) * uint64(logical)
	b := make([]byte, physical)
	for {
		read, err := contents.Read(b)
		if read > 0 {
			if total+uint64(read) > size {
				return total, fmt.Errorf("requested to write at least %d bytes to partition but maximum size is %d", total+uint64(read), size)
			}
			written, werr := f.WriteAt(b[:read], int64(start+total))
			if written > 0 {
				total += uint64(written)
			}
			if werr != nil {
				return total, fmt.Errorf("error writing to file: %v", werr)
			}
			if written != read {
				return total, part.NewIncompletePartitionWriteError(total, size)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return total, fmt.Errorf("error reading contents to pass to partition: %v", err)
		}
	}
	// pad the tail so the partition always holds full sectors
	if total%uint64(logical) != 0 {
		pad := make([]byte, uint64(logical)-total%uint64(logical))
		written, err := f.WriteAt(pad, int64(start+total))
		if err != nil {
			return total, fmt.Errorf("error writing padding to file: %v", err)
		}
		total += uint64(written)
	}
	return total, nil
}

// interface guard
var _ part.Partition = (*Partition)(nil)
