package flush

import (
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"

	"pmemio/internal/cpucap"
)

func TestFlushZeroLengthNoop(t *testing.T) {
	rec := &cpucap.Record{FlushKind: cpucap.FlushCLFlush}
	buf := make([]byte, 64)
	// Must not touch buf at all; a non-zero offset pointer with
	// length 0 would be out of bounds if it did.
	Flush(rec, unsafe.Pointer(&buf[63]), 0)
}

func TestFlushNoneIsSafeOverUnmappedStyleRange(t *testing.T) {
	rec := &cpucap.Record{FlushKind: cpucap.FlushNone, FenceKind: cpucap.FenceSFence}
	buf := make([]byte, 256)
	Flush(rec, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	Drain(rec)
	Persist(rec, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
}

func TestFlushSpansPartialCacheLines(t *testing.T) {
	// A range that starts and ends mid-cache-line must still flush
	// every line it intersects; FlushNone keeps this safe to exercise
	// regardless of what the host CPU actually supports.
	rec := &cpucap.Record{FlushKind: cpucap.FlushNone}
	buf := make([]byte, 200)
	Flush(rec, unsafe.Pointer(&buf[10]), 180)
}

func TestHasHWDrainIsFalse(t *testing.T) {
	if HasHWDrain() {
		t.Fatalf("HasHWDrain() = true, want false on this platform family")
	}
}

func TestMsyncZeroLengthNoop(t *testing.T) {
	if err := Msync(unsafe.Pointer(uintptr(0x1000)), 0); err != nil {
		t.Fatalf("Msync with length 0 = %v, want nil", err)
	}
}

func TestMsyncOnAnonymousMapping(t *testing.T) {
	pageSize := unix.Getpagesize()
	b, err := unix.Mmap(-1, 0, pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		t.Fatalf("Mmap: %v", err)
	}
	defer unix.Munmap(b)

	b[0] = 1
	if err := Msync(unsafe.Pointer(&b[0]), uintptr(len(b))); err != nil {
		t.Fatalf("Msync: %v", err)
	}
}

// TestFlushRealCapability exercises the flush instruction the probe
// selected for the host. Probe only selects FlushNone when
// PMEM_NO_FLUSH=1, and the test is skipped in that case; on non-amd64
// platforms the selected clflush path runs through no-op stubs.
func TestFlushRealCapability(t *testing.T) {
	rec := cpucap.Probe()
	if rec.FlushKind == cpucap.FlushNone {
		t.Skip("flushing disabled by PMEM_NO_FLUSH")
	}
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i)
	}
	Persist(rec, unsafe.Pointer(&buf[0]), uintptr(len(buf)))
}
