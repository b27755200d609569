package pmemio

import (
	"unsafe"

	"pmemio/internal/cpucap"
	"pmemio/internal/diag"
	"pmemio/internal/flush"
	"pmemio/internal/pmerr"
	"pmemio/internal/registry"
	"pmemio/internal/xfer"
)

var reg = registry.New()

func rec() *cpucap.Record { return cpucap.Default() }

// Flush issues one cache-line flush instruction per line intersecting
// [addr, addr+length). Safe to call with length == 0.
func Flush(addr unsafe.Pointer, length uintptr) {
	diag.OpCounters.Flushes.Inc()
	flush.Flush(rec(), addr, length)
}

// Drain issues the pre-drain fence the capability probe selected.
func Drain() {
	diag.OpCounters.Drains.Inc()
	flush.Drain(rec())
}

// Persist is Flush followed by Drain.
func Persist(addr unsafe.Pointer, length uintptr) {
	Flush(addr, length)
	Drain()
}

// HasHWDrain reports whether the platform has a dedicated hardware
// drain distinct from a full store fence. Always false on x86.
func HasHWDrain() bool { return flush.HasHWDrain() }

// Msync page-aligns addr and length and issues a full synchronous
// page-cache sync.
func Msync(addr unsafe.Pointer, length uintptr) error {
	if err := flush.Msync(addr, length); err != nil {
		return pmerr.Wrap(pmerr.OsIoFailure, "msync", err)
	}
	return nil
}

// IsPmem reports whether [addr, addr+length) lies entirely in real
// byte-addressable persistent memory, per spec.md 4.5: an init-time or
// env-forced answer takes priority, then CPU support, then a registry
// probe.
func IsPmem(addr unsafe.Pointer, length uintptr) bool {
	diag.OpCounters.IsPmemCalls.Inc()
	r := rec()
	if set, answer := r.IsPmemForce(); set {
		return answer
	}
	switch r.IsPmemKind {
	case cpucap.IsPmemAlways:
		return true
	case cpucap.IsPmemRegistryProbe:
		return reg.IsPmemDetect(uintptr(addr), length)
	default:
		return false
	}
}

// MemmoveNodrain copies length bytes from src to dst, correctly
// handling overlap, and flushes every touched cache line without
// issuing the final fence.
func MemmoveNodrain(dst, src unsafe.Pointer, length uintptr) {
	xfer.MemmoveNodrain(rec(), dst, src, length)
}

// MemmovePersist is MemmoveNodrain followed by a drain.
func MemmovePersist(dst, src unsafe.Pointer, length uintptr) {
	xfer.MemmovePersist(rec(), dst, src, length)
}

// MemcpyNodrain is MemmoveNodrain for the non-overlapping contract of
// memcpy.
func MemcpyNodrain(dst, src unsafe.Pointer, length uintptr) {
	xfer.MemcpyNodrain(rec(), dst, src, length)
}

// MemcpyPersist is MemcpyNodrain followed by a drain.
func MemcpyPersist(dst, src unsafe.Pointer, length uintptr) {
	xfer.MemcpyPersist(rec(), dst, src, length)
}

// MemsetNodrain fills length bytes at dst with c and flushes every
// touched cache line, without issuing the final fence.
func MemsetNodrain(dst unsafe.Pointer, c byte, length uintptr) {
	xfer.MemsetNodrain(rec(), dst, c, length)
}

// MemsetPersist is MemsetNodrain followed by a drain.
func MemsetPersist(dst unsafe.Pointer, c byte, length uintptr) {
	xfer.MemsetPersist(rec(), dst, c, length)
}

// RegisterMapping inserts [addr, addr+length) into the mapping
// registry (spec.md 4.4's map_range_register), resolving device and
// region identity from deviceID/regionID (typically obtained by
// fstat-ing the mapped file or DAX device).
func RegisterMapping(addr unsafe.Pointer, length uintptr, directMapped bool, deviceID, regionID uint64) error {
	if err := reg.Register(uintptr(addr), length, directMapped, deviceID, regionID); err != nil {
		diag.Logf("register %p/%d failed: %v\n%s", addr, length, err, diag.CallStack(2))
		return err
	}
	return nil
}

// UnregisterMapping removes [addr, addr+length) from the registry,
// splitting any entry it partially covers (spec.md 4.4's
// map_range_unregister).
func UnregisterMapping(addr unsafe.Pointer, length uintptr) error {
	return reg.Unregister(uintptr(addr), length)
}

// FindMapping returns the first registered entry overlapping
// [addr, addr+length).
func FindMapping(addr unsafe.Pointer, length uintptr) (registry.Entry, bool) {
	return reg.Find(uintptr(addr), length)
}

// Unmap removes [addr, addr+length) from the registry and then
// releases the OS mapping, in that order, so a concurrent IsPmem
// cannot observe a torn address (spec.md 4.7).
func Unmap(addr unsafe.Pointer, length uintptr) error {
	if err := reg.Unregister(uintptr(addr), length); err != nil {
		return err
	}
	if err := osUnmap(addr, length); err != nil {
		return pmerr.Wrap(pmerr.OsIoFailure, "unmap", err)
	}
	return nil
}
