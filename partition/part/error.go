package part

import "fmt"

// IncompletePartitionWriteError reports a write that stopped before the
// requested number of bytes reached the partition.
type IncompletePartitionWriteError struct {
	writtenBytes uint64
	totalBytes   uint64
}

func (e *IncompletePartitionWriteError) Error() string {
	return fmt.Sprintf("wrote %d bytes to partition of size %d", e.writtenBytes, e.totalBytes)
}

func NewIncompletePartitionWriteError(written, total uint64) error {
	return &IncompletePartitionWriteError{
		writtenBytes: written,
		totalBytes:   total,
	}
}
