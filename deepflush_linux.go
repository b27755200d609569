//go:build linux

package pmemio

import (
	"fmt"
	"os"

	"pmemio/internal/diag"
	"pmemio/internal/pmerr"
	"pmemio/internal/registry"
)

// deepFlushDevice writes "1" to the DAX region's deep-flush sysfs
// control file, the Linux mechanism that pushes data from the memory
// controller's write pending queue out to the medium. The control
// file lives at /sys/dev/char/<major>:<minor>/device/deep_flush for a
// device-DAX node backing the registered region.
func deepFlushDevice(deviceID, regionID uint64, addr, length uintptr) error {
	major, minor := registry.SplitDeviceID(deviceID)
	path := fmt.Sprintf("/sys/dev/char/%d:%d/device/deep_flush", major, minor)

	diag.Logf("deep_flush device %d:%d region %d via %s", major, minor, regionID, path)

	err := os.WriteFile(path, []byte("1"), 0)
	if err != nil {
		return pmerr.Wrap(pmerr.OsIoFailure, "deep_flush", err)
	}
	return nil
}
