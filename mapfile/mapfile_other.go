//go:build !linux

package mapfile

import "os"

// Non-Linux platforms have no device-DAX or filesystem-DAX concept in
// this library's scope; every mapping is treated as an ordinary
// file-backed mapping.
func isDeviceDAX(f *os.File) bool  { return false }
func isDAXMount(path string) bool { return false }

// deviceIdentity has no portable fstat-based device/inode story outside
// Linux in this library's scope; every mapping registers as region 0.
func deviceIdentity(f *os.File, isPmem bool) (deviceID, regionID uint64) { return 0, 0 }
