package partition

import (
	"github.com/partfile/partfile/backend"
)

// Table reference to a partitioning table on disk
type Table interface {
	Type() string
	Write(backend.WritableFile, int64) error
	GetPartitionSize(int) (int64, error)
	GetPartitionStart(int) (int64, error)
}
