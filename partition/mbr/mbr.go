// Package mbr provides an interface to the legacy master boot record partition table,
// the 512-byte boot sector describing up to four primary partitions.
package mbr

// Type is the one-byte partition type of a table entry,
// see https://en.wikipedia.org/wiki/Master_boot_record#Partition_table_entries
type Type byte

// Known partition types. This system only records the type; it never interprets it.
const (
	Empty         Type = 0x00
	Fat12         Type = 0x01
	XenixRoot     Type = 0x02
	XenixUsr      Type = 0x03
	Fat16         Type = 0x04
	ExtendedCHS   Type = 0x05
	Fat16b        Type = 0x06
	NTFS          Type = 0x07
	CommodoreFAT  Type = 0x08
	Fat32CHS      Type = 0x0b
	Fat32LBA      Type = 0x0c
	Fat16bLBA     Type = 0x0e
	ExtendedLBA   Type = 0x0f
	Linux         Type = 0x83
	LinuxExtended Type = 0x85
	LinuxLVM      Type = 0x8e
	Iso9660       Type = 0x96
	MacOSXUFS     Type = 0xa8
	MacOSXBoot    Type = 0xab
	HFS           Type = 0xaf
	Solaris8Boot  Type = 0xbe
	GPTProtective Type = 0xee
	EFISystem     Type = 0xef
	VMWareFS      Type = 0xfb
	VMWareSwap    Type = 0xfc
	LinuxRaidAuto Type = 0xfd
	LANStep       Type = 0xfe
)

const (
	// SectorSize is the standard size of an MBR disk sector
	SectorSize = 512
	// mbrSize is the total size of the boot sector we read and validate
	mbrSize = 512
	// partitionEntriesStart is the byte offset of the first partition entry
	partitionEntriesStart = 446
	// partitionEntrySize is the size in bytes of a single partition entry
	partitionEntrySize = 16
	// partitionEntriesCount is how many primary entries a legacy table holds
	partitionEntriesCount = 4
	// diskSignatureStart is the byte offset of the optional 32-bit disk signature
	diskSignatureStart = 440
	// signatureStart is the byte offset of the two boot signature bytes
	signatureStart = 510
)

// the boot signature bytes at offsets 510-511
const (
	signatureByte0 byte = 0x55
	signatureByte1 byte = 0xaa
)
