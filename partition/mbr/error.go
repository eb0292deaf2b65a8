package mbr

import "fmt"

// UnsupportedExtendedPartitionError is returned when a requested partition
// index falls outside the four primary entries. Indexes of 5 and up name
// logical partitions reached through an extended-entry chain, which this
// library does not implement.
type UnsupportedExtendedPartitionError struct {
	partition int
}

func (e *UnsupportedExtendedPartitionError) Error() string {
	return fmt.Sprintf("unsupported extended partition %d: only primary partitions 1-%d can be resolved", e.partition, partitionEntriesCount)
}

func NewUnsupportedExtendedPartitionError(partition int) *UnsupportedExtendedPartitionError {
	return &UnsupportedExtendedPartitionError{
		partition: partition,
	}
}

// InvalidGeometryError is returned when a partition entry carries a zero
// start sector or zero sector count and therefore describes no byte range.
type InvalidGeometryError struct {
	partition int
	start     uint32
	size      uint32
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry for partition %d: start lba %d or sector count %d is zero", e.partition, e.start, e.size)
}

func NewInvalidGeometryError(partition int, start, size uint32) *InvalidGeometryError {
	return &InvalidGeometryError{
		partition: partition,
		start:     start,
		size:      size,
	}
}
