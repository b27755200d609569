//go:build linux

package mapfile

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"pmemio/internal/registry"
)

// isDeviceDAX reports whether f refers to a character device, the
// shape of a /dev/daxN.M device-DAX node. Device DAX files are always
// entirely byte-addressable persistent memory.
func isDeviceDAX(f *os.File) bool {
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}

// isDAXMount reports whether path lives on a filesystem mounted with
// the "dax" option, by scanning /proc/self/mountinfo for the longest
// matching mount point. Filesystem-DAX (an ext4/xfs mount over a pmem
// block device with -o dax) is the other shape a direct-mapped region
// takes on Linux.
func isDAXMount(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return false
	}
	defer f.Close()

	best := ""
	bestDAX := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		// mountinfo: ... mountPoint ... - fsType source superOptions
		sepIdx := -1
		for i, f := range fields {
			if f == "-" {
				sepIdx = i
				break
			}
		}
		if sepIdx < 0 || len(fields) < sepIdx+4 || len(fields) < 5 {
			continue
		}
		mountPoint := fields[4]
		if !strings.HasPrefix(abs, mountPoint) || len(mountPoint) <= len(best) {
			continue
		}
		superOpts := fields[sepIdx+3]
		best = mountPoint
		bestDAX = strings.Contains(superOpts, "dax")
	}
	return bestDAX
}

// deviceIdentity resolves the deviceID/regionID pair RegisterMapping
// needs from f's fstat result: for a device-DAX node this is the
// character device's own major:minor (Rdev), for an ordinary
// filesystem-backed mapping it's the filesystem device major:minor
// (Dev). The inode number stands in for a region identifier either
// way; deep_flush locates its control file from deviceID alone and
// only logs the region identifier.
func deviceIdentity(f *os.File, isPmem bool) (deviceID, regionID uint64) {
	var st unix.Stat_t
	if err := unix.Fstat(int(f.Fd()), &st); err != nil {
		return 0, 0
	}
	dev := st.Dev
	if isPmem && st.Mode&unix.S_IFMT == unix.S_IFCHR {
		dev = st.Rdev
	}
	return registry.DeviceID(uint32(unix.Major(dev)), uint32(unix.Minor(dev))), uint64(st.Ino)
}
