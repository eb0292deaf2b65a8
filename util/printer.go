// Package util holds small helpers shared by the CLI.
package util

import (
	"fmt"
)

// DumpByteSlice dump a byte slice in hex and optionally ASCII format, like xxd.
// Can show positions at beginning of each row in hex, decimal or both.
// Can highlight the given positions in highlightBytes, e.g. the partition
// table region of a boot sector. If highlightBytes is nil nothing is highlighted.
func DumpByteSlice(b []byte, bytesPerRow int, showASCII, showPosHex, showPosDec bool, highlightBytes []int) (out string) {
	var ascii []byte
	highlightMap := make(map[int]bool)
	for _, v := range highlightBytes {
		highlightMap[v] = true
	}
	numRows := len(b) / bytesPerRow
	if len(b)%bytesPerRow != 0 {
		numRows++
	}
	for i := 0; i < numRows; i++ {
		firstByte := i * bytesPerRow
		lastByte := firstByte + bytesPerRow
		var row string
		// row header includes optional position numbers
		if showPosHex {
			row += fmt.Sprintf("%08x ", firstByte)
		}
		if showPosDec {
			row += fmt.Sprintf("%4d ", firstByte)
		}
		row += ": "
		for j := firstByte; j < lastByte; j++ {
			// every 8 bytes add extra spacing to make it easier to read
			if j%8 == 0 {
				row += " "
			}
			if j < len(b) {
				hex := fmt.Sprintf(" %02x", b[j])
				if highlightMap[j] {
					hex = "\033[1m\033[31m" + hex + "\033[0m"
				}
				row += hex
			} else {
				row += "   "
			}
			switch {
			case j >= len(b):
				// past end of byte slice, print spaces
				ascii = append(ascii, ' ')
			case b[j] < 32 || b[j] > 126:
				// unprintable characters, print a dot
				ascii = append(ascii, '.')
			default:
				ascii = append(ascii, b[j])
			}
		}
		if showASCII {
			row += fmt.Sprintf("  %s", string(ascii))
			ascii = ascii[:0]
		}
		out += row + "\n"
	}
	return out
}
