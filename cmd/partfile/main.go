package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/partfile/partfile"
	"github.com/partfile/partfile/backend/file"
	"github.com/partfile/partfile/partition/mbr"
	"github.com/partfile/partfile/util"
)

var defaultLogFormatter = &log.TextFormatter{}

// infoFormatter overrides the default format for Info() log events to
// provide an easier to read output
type infoFormatter struct {
}

func (f *infoFormatter) Format(entry *log.Entry) ([]byte, error) {
	if entry.Level == log.InfoLevel {
		return append([]byte(entry.Message), '\n'), nil
	}
	return defaultLogFormatter.Format(entry)
}

func printHelp() {
	fmt.Printf("USAGE: %s [options] COMMAND\n\n", os.Args[0])
	fmt.Printf("Commands:\n")
	fmt.Printf("  info      Print the decoded partition table of an image\n")
	fmt.Printf("  geometry  Print the byte-range window of one partition\n")
	fmt.Printf("  cat       Stream the contents of one partition to stdout\n")
	fmt.Printf("  dump      Hex dump the boot sector, partition table highlighted\n")
	fmt.Printf("  mkimg     Create a disk image with an MBR and one partition\n")
	fmt.Printf("  stat      Report file sizes as seen through the resolved window\n")
	fmt.Printf("  help      Print this message\n")
	fmt.Printf("\n")
	fmt.Printf("Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = printHelp
	flagQuiet := flag.Bool("q", false, "Quiet execution")
	flagVerbose := flag.Bool("v", false, "Verbose execution")

	flag.Parse()

	// Set up logging
	log.SetFormatter(new(infoFormatter))
	log.SetLevel(log.InfoLevel)
	if *flagQuiet && *flagVerbose {
		fmt.Printf("Can't set quiet and verbose flag at the same time\n")
		os.Exit(1)
	}
	if *flagQuiet {
		log.SetLevel(log.ErrorLevel)
	}
	if *flagVerbose {
		// Switch back to the standard formatter
		log.SetFormatter(defaultLogFormatter)
		log.SetLevel(log.DebugLevel)
	}

	args := flag.Args()
	if len(args) < 1 {
		printHelp()
		os.Exit(1)
	}

	switch args[0] {
	case "info":
		info(args[1:])
	case "geometry":
		geometry(args[1:])
	case "cat":
		cat(args[1:])
	case "dump":
		dump(args[1:])
	case "mkimg":
		mkimg(args[1:])
	case "stat":
		stat(args[1:])
	case "help":
		printHelp()
	default:
		fmt.Printf("%q is not a valid command.\n\n", args[0])
		printHelp()
		os.Exit(1)
	}
}

func readTable(path string) *mbr.Table {
	storage, err := file.OpenFromPath(path, true)
	if err != nil {
		log.Fatalf("unable to open image: %v", err)
	}
	defer storage.Close()
	table, err := mbr.Read(storage, mbr.SectorSize, mbr.SectorSize)
	if err != nil {
		log.Fatalf("unable to read partition table from %s: %v", path, err)
	}
	return table
}

func info(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf("USAGE: %s info <image>\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	table := readTable(fs.Arg(0))
	fmt.Printf("Disk identifier: 0x%08x\n", table.DiskSignature)
	fmt.Printf("%-4s %-4s %-12s %-10s %-10s %-6s\n", "Num", "Boot", "UUID", "Start", "Sectors", "Type")
	for i, p := range table.Partitions {
		if p.Type == mbr.Empty {
			continue
		}
		boot := ""
		if p.Bootable {
			boot = "*"
		}
		fmt.Printf("%-4d %-4s %-12s %-10d %-10d 0x%02x\n", i+1, boot, p.UUID(), p.Start, p.Size, byte(p.Type))
	}
}

func geometry(args []string) {
	fs := flag.NewFlagSet("geometry", flag.ExitOnError)
	partNum := fs.Int("n", 1, "1-based partition number")
	fs.Usage = func() {
		fmt.Printf("USAGE: %s geometry [-n num] <image>\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	f, err := partfile.Open(fs.Arg(0), *partNum)
	if err != nil {
		log.Fatalf("unable to resolve partition window: %v", err)
	}
	defer f.Close()
	win := f.Window()
	fmt.Printf("base  %12d\n", win.Base)
	fmt.Printf("size  %12d\n", win.Size)
	fmt.Printf("end   %12d\n", win.End)
}

func cat(args []string) {
	fs := flag.NewFlagSet("cat", flag.ExitOnError)
	partNum := fs.Int("n", 1, "1-based partition number")
	fs.Usage = func() {
		fmt.Printf("USAGE: %s cat [-n num] <image>\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	storage, err := file.OpenFromPath(fs.Arg(0), true)
	if err != nil {
		log.Fatalf("unable to open image: %v", err)
	}
	defer storage.Close()
	table, err := mbr.Read(storage, mbr.SectorSize, mbr.SectorSize)
	if err != nil {
		log.Fatalf("unable to read partition table: %v", err)
	}
	p, err := table.GetPartition(*partNum)
	if err != nil {
		log.Fatalf("unable to select partition: %v", err)
	}
	read, err := p.ReadContents(storage, os.Stdout)
	if err != nil {
		log.Fatalf("error after %d bytes: %v", read, err)
	}
	log.Debugf("streamed %d bytes", read)
}

func dump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf("USAGE: %s dump <image>\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	storage, err := file.OpenFromPath(fs.Arg(0), true)
	if err != nil {
		log.Fatalf("unable to open image: %v", err)
	}
	defer storage.Close()
	b := make([]byte, mbr.SectorSize)
	if _, err := io.ReadFull(storage, b); err != nil {
		log.Fatalf("unable to read boot sector: %v", err)
	}
	// highlight the disk signature, partition entries and boot signature
	highlight := make([]int, 0, 512-440)
	for i := 440; i < 512; i++ {
		highlight = append(highlight, i)
	}
	fmt.Print(util.DumpByteSlice(b, 16, true, true, false, highlight))
}

func mkimg(args []string) {
	fs := flag.NewFlagSet("mkimg", flag.ExitOnError)
	size := fs.Int64("size", 10*1024*1024, "image size in bytes")
	start := fs.Uint("start", 2048, "first sector of the partition")
	sectors := fs.Uint("sectors", 0, "number of sectors in the partition, 0 for the rest of the image")
	partType := fs.Uint("type", uint(mbr.Linux), "partition type byte")
	bootable := fs.Bool("bootable", false, "mark the partition bootable")
	fs.Usage = func() {
		fmt.Printf("USAGE: %s mkimg [options] <image>\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	count := uint32(*sectors)
	if count == 0 {
		total := uint32(*size / mbr.SectorSize)
		if uint32(*start) >= total {
			log.Fatalf("partition start %d is past the end of a %d byte image", *start, *size)
		}
		count = total - uint32(*start)
	}

	storage, err := file.CreateFromPath(fs.Arg(0), *size)
	if err != nil {
		log.Fatalf("unable to create image: %v", err)
	}
	defer storage.Close()
	writable, err := storage.Writable()
	if err != nil {
		log.Fatalf("image not writable: %v", err)
	}

	table := &mbr.Table{
		LogicalSectorSize:  mbr.SectorSize,
		PhysicalSectorSize: mbr.SectorSize,
		DiskSignature:      mbr.NewDiskSignature(),
		Partitions: []*mbr.Partition{
			{Bootable: *bootable, Type: mbr.Type(*partType), Start: uint32(*start), Size: count},
		},
	}
	if err := table.Write(writable, *size); err != nil {
		log.Fatalf("unable to write partition table: %v", err)
	}
	log.Infof("wrote %s: signature 0x%08x, partition 1 start %d sectors %d", fs.Arg(0), table.DiskSignature, *start, count)
}

// stat resolves the window from P_FILE and P_NUM and reports each named
// file's size as a program running under the window would see it: the
// backing image reports the partition length, everything else its true size.
func stat(args []string) {
	fs := flag.NewFlagSet("stat", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Printf("USAGE: P_FILE=<image> P_NUM=<n> %s stat <path>...\n\n", os.Args[0])
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)
	if fs.NArg() < 1 {
		fs.Usage()
		os.Exit(1)
	}

	f := partfile.FromEnv()
	for _, path := range fs.Args() {
		fi, err := os.Stat(path)
		if err != nil {
			log.Fatalf("unable to stat %s: %v", path, err)
		}
		fixed := partfile.FixupFileInfo(fi, f.Window(), f.Identity())
		fmt.Printf("%12d %s\n", fixed.Size(), path)
	}
}
