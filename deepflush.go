package pmemio

import (
	"unsafe"

	"pmemio/internal/diag"
	"pmemio/internal/flush"
	"pmemio/internal/pmerr"
	"pmemio/internal/registry"
)

// findInSnapshot returns the first entry (lowest Base, snapshot is
// address-ordered) overlapping [addr, addr+length).
func findInSnapshot(snap []registry.Entry, addr, length uintptr) (registry.Entry, bool) {
	end := addr + length
	for _, e := range snap {
		if addr < e.End && e.Base < end {
			return e, true
		}
	}
	return registry.Entry{}, false
}

// DeepFlush produces a stronger durability guarantee than Persist:
// data reach the storage controller, not merely the CPU persistence
// domain. It walks [addr, addr+length) against a single registry
// snapshot (spec.md 4.6), msync-ing any untracked prefix and invoking
// the platform-specific final-write step for each tracked,
// direct-mapped sub-range. Taking one snapshot up front, rather than
// one Find per sub-range, gives the whole walk the consistent view of
// the region set the spec calls for.
func DeepFlush(addr unsafe.Pointer, length uintptr) error {
	diag.OpCounters.DeepFlushes.Inc()
	if length == 0 {
		return nil
	}

	cur := uintptr(addr)
	end := cur + length
	snap := reg.Snapshot()

	for cur < end {
		remaining := end - cur
		entry, ok := findInSnapshot(snap, cur, remaining)
		if !ok {
			return msyncRange(cur, remaining)
		}

		if entry.Base > cur {
			prefix := entry.Base - cur
			if err := msyncRange(cur, prefix); err != nil {
				return err
			}
			cur = entry.Base
			remaining = end - cur
		}

		trackedEnd := entry.End
		if trackedEnd > end {
			trackedEnd = end
		}
		trackedLen := trackedEnd - cur

		if entry.DirectMapped {
			if err := deepFlushDevice(entry.DeviceID, entry.RegionID, cur, trackedLen); err != nil {
				return err
			}
		} else if err := msyncRange(cur, trackedLen); err != nil {
			return err
		}

		cur = trackedEnd
	}
	return nil
}

func msyncRange(addr, length uintptr) error {
	if err := flush.Msync(unsafe.Pointer(addr), length); err != nil {
		return pmerr.Wrap(pmerr.OsIoFailure, "deep_flush", err)
	}
	return nil
}
