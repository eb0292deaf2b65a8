package partfile

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Environment variables consumed by FromEnv.
const (
	// EnvBackingFile is the path to the whole-disk image
	EnvBackingFile = "P_FILE"
	// EnvPartitionNumber is the 1-based partition number within the image
	EnvPartitionNumber = "P_NUM"
)

// maxConfigPartition is the highest partition number the configuration gate
// accepts. Numbers 5-8 pass the gate but fail at decode time, since logical
// partitions behind an extended entry are not implemented.
const maxConfigPartition = 8

var (
	initOnce sync.Once
	global   *File
)

// parseEnvConfig validates the two required inputs. getenv is injected so
// the validation is testable without mutating the process environment.
func parseEnvConfig(getenv func(string) string) (path string, partNum int, err error) {
	path = getenv(EnvBackingFile)
	if path == "" {
		return "", 0, fmt.Errorf("backing file path not given in %s", EnvBackingFile)
	}
	numStr := getenv(EnvPartitionNumber)
	if numStr == "" {
		return "", 0, fmt.Errorf("partition number not given in %s", EnvPartitionNumber)
	}
	partNum, aerr := strconv.Atoi(numStr)
	if aerr != nil || partNum < 1 || partNum > maxConfigPartition {
		return "", 0, fmt.Errorf("invalid partition number %q in %s: must be an integer in [1,%d]", numStr, EnvPartitionNumber, maxConfigPartition)
	}
	return path, partNum, nil
}

// FromEnv resolves the process-wide partition view from P_FILE and P_NUM.
// It runs the full resolution at most once, no matter how many goroutines
// hit it first; a partially initialized view is never observable. Missing or
// invalid configuration, an unreadable image, or a malformed partition table
// all abort the process: there is no way to serve correct positions without
// these inputs, so no degraded mode exists.
func FromEnv() *File {
	initOnce.Do(func() {
		path, partNum, err := parseEnvConfig(os.Getenv)
		if err != nil {
			log.Fatalf("partition window configuration: %v", err)
		}
		f, err := Open(path, partNum)
		if err != nil {
			log.Fatalf("failed to resolve partition window for %s: %v", path, err)
		}
		global = f
	})
	return global
}
