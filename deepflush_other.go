//go:build !linux

package pmemio

// Non-Linux platforms have no deep-flush control file; spec.md 4.6
// step 4 says this step is simply msync there.
func deepFlushDevice(deviceID, regionID uint64, addr, length uintptr) error {
	return msyncRange(addr, length)
}
