// Package partition provides ability to work with individual partitions.
// The only implemented table format is the legacy MBR table in the mbr
// subpackage; GUID partition tables are deliberately out of scope.
package partition

import (
	"fmt"

	"github.com/partfile/partfile/backend"
	"github.com/partfile/partfile/partition/mbr"
)

// Read read a partition table from a disk
func Read(f backend.File, logicalBlocksize, physicalBlocksize int) (Table, error) {
	mbrTable, err := mbr.Read(f, logicalBlocksize, physicalBlocksize)
	if err != nil {
		return nil, fmt.Errorf("unknown disk partition type: %v", err)
	}
	return mbrTable, nil
}
