package mbr

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
	"github.com/partfile/partfile/backend"
)

// Table represents an MBR partition table to be applied to a disk or read
// from a disk. Only the four primary entries exist; chains of logical
// partitions hanging off an extended entry are not followed.
type Table struct {
	Partitions []*Partition
	// LogicalSectorSize is the size of the logical sectors, usually 512 bytes
	LogicalSectorSize int
	// PhysicalSectorSize is the size of the physical sectors, usually 512 bytes
	PhysicalSectorSize int
	// DiskSignature is the optional 32-bit signature at byte 440, little-endian
	DiskSignature uint32
}

// NewDiskSignature generates a fresh random 32-bit disk signature.
func NewDiskSignature() uint32 {
	id := uuid.New()
	return binary.LittleEndian.Uint32(id[0:4])
}

// Type report the type of table, always "mbr".
func (t *Table) Type() string {
	return "mbr"
}

// Equal check if another table is equivalent to this one, entry by entry.
func (t *Table) Equal(o *Table) bool {
	if o == nil {
		return false
	}
	if len(t.Partitions) != len(o.Partitions) {
		return false
	}
	for i, p := range t.Partitions {
		if !p.Equal(o.Partitions[i]) {
			return false
		}
	}
	return true
}

// tableFromBytes decodes a 512-byte boot sector into a Table. The two
// signature bytes at 510-511 must read 0x55, 0xaa; a sector without them has
// no table this library is willing to interpret.
func tableFromBytes(b []byte, logicalSectorSize, physicalSectorSize int) (*Table, error) {
	if len(b) < mbrSize {
		return nil, fmt.Errorf("data for partition table was %d bytes instead of expected %d", len(b), mbrSize)
	}

	if b[signatureStart] != signatureByte0 || b[signatureStart+1] != signatureByte1 {
		return nil, fmt.Errorf("invalid MBR signature %02x %02x", b[signatureStart], b[signatureStart+1])
	}

	signature := binary.LittleEndian.Uint32(b[diskSignatureStart : diskSignatureStart+4])
	parts := make([]*Partition, 0, partitionEntriesCount)
	for i := 0; i < partitionEntriesCount; i++ {
		start := partitionEntriesStart + i*partitionEntrySize
		p, err := partitionFromBytes(b[start:start+partitionEntrySize], logicalSectorSize, physicalSectorSize)
		if err != nil {
			return nil, fmt.Errorf("error reading partition entry %d: %v", i+1, err)
		}
		p.index = i + 1
		p.diskSignature = signature
		parts = append(parts, p)
	}

	return &Table{
		Partitions:         parts,
		LogicalSectorSize:  logicalSectorSize,
		PhysicalSectorSize: physicalSectorSize,
		DiskSignature:      signature,
	}, nil
}

// Read reads a partition table from the beginning of a disk image. Exactly
// one sector is consumed; fewer available bytes is an error.
func Read(f backend.File, logicalSectorSize, physicalSectorSize int) (*Table, error) {
	b := make([]byte, mbrSize)
	read, err := f.ReadAt(b, 0)
	if err != nil {
		return nil, fmt.Errorf("error reading MBR from file: %v", err)
	}
	if read != mbrSize {
		return nil, fmt.Errorf("read only %d bytes of MBR instead of expected %d", read, mbrSize)
	}
	return tableFromBytes(b, logicalSectorSize, physicalSectorSize)
}

// toBytes serializes the partition entries and boot signature, i.e. the last
// 66 bytes of the boot sector. The bootstrap area is never touched.
func (t *Table) toBytes() []byte {
	b := make([]byte, 0, mbrSize-partitionEntriesStart)
	for i := 0; i < partitionEntriesCount; i++ {
		if i < len(t.Partitions) {
			b = append(b, t.Partitions[i].toBytes()...)
		} else {
			b = append(b, make([]byte, partitionEntrySize)...)
		}
	}
	b = append(b, signatureByte0, signatureByte1)
	return b
}

// Write the partition table to disk. The entries and boot signature are
// written at byte 446; when DiskSignature is set it is written at byte 440.
func (t *Table) Write(f backend.WritableFile, _ int64) error {
	b := t.toBytes()
	written, err := f.WriteAt(b, partitionEntriesStart)
	if err != nil {
		return fmt.Errorf("error writing partition table to disk: %v", err)
	}
	if written != len(b) {
		return fmt.Errorf("partition table wrote %d bytes to disk instead of the expected %d", written, len(b))
	}
	if t.DiskSignature != 0 {
		sig := make([]byte, 4)
		binary.LittleEndian.PutUint32(sig, t.DiskSignature)
		if _, err := f.WriteAt(sig, diskSignatureStart); err != nil {
			return fmt.Errorf("error writing disk signature to disk: %v", err)
		}
	}
	return nil
}

// GetPartitionSize returns the size in sectors of the partition at the given
// 1-based index.
func (t *Table) GetPartitionSize(partition int) (int64, error) {
	p, err := t.GetPartition(partition)
	if err != nil {
		return 0, err
	}
	return p.GetSize(), nil
}

// GetPartitionStart returns the first sector of the partition at the given
// 1-based index.
func (t *Table) GetPartitionStart(partition int) (int64, error) {
	p, err := t.GetPartition(partition)
	if err != nil {
		return 0, err
	}
	return p.GetStart(), nil
}

// GetPartition returns the entry at the given 1-based index. Index 5 and up
// would name a logical partition chained off an extended entry, which this
// library does not follow; those indexes are rejected rather than guessed at.
// An entry with a zero start or zero sector count does not describe usable
// geometry and is rejected as well.
func (t *Table) GetPartition(partition int) (*Partition, error) {
	if partition < 1 || partition > partitionEntriesCount {
		return nil, &UnsupportedExtendedPartitionError{partition: partition}
	}
	if partition > len(t.Partitions) {
		return nil, &InvalidGeometryError{partition: partition}
	}
	p := t.Partitions[partition-1]
	if p.Start == 0 || p.Size == 0 {
		return nil, &InvalidGeometryError{partition: partition, start: p.Start, size: p.Size}
	}
	return p, nil
}
