//go:build linux

package resources

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

const meminfoPath = "/proc/meminfo"

// AvailableMemoryGB returns available physical memory in GiB, or 0 when it
// cannot be determined.
func AvailableMemoryGB() float64 {
	if gb, ok := readMemAvailable(meminfoPath); ok {
		return gb
	}
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return 0
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	free := (uint64(info.Freeram) + uint64(info.Bufferram)) * unit
	return float64(free) / (1 << 30)
}

func readMemAvailable(path string) (float64, bool) {
	file, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "MemAvailable:" {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return float64(kb) / (1 << 20), true
	}
	return 0, false
}
