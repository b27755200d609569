package pmemio

import (
	"bytes"
	"errors"
	"testing"
	"unsafe"
)

func TestMemcpyPersistRoundTrip(t *testing.T) {
	src := make([]byte, 8192)
	for i := range src {
		src[i] = byte(i * 3)
	}
	dst := make([]byte, 8192)
	MemcpyPersist(unsafe.Pointer(&dst[0]), unsafe.Pointer(&src[0]), uintptr(len(src)))
	if !bytes.Equal(dst, src) {
		t.Fatalf("MemcpyPersist did not reproduce source content")
	}
}

func TestMemsetPersistFillsRange(t *testing.T) {
	buf := make([]byte, 5000)
	MemsetPersist(unsafe.Pointer(&buf[0]), 0x5A, uintptr(len(buf)))
	for i, b := range buf {
		if b != 0x5A {
			t.Fatalf("byte %d = %#x, want 0x5a", i, b)
		}
	}
}

func TestPersistIsFlushThenDrain(t *testing.T) {
	// Flush(addr,len); Drain() and Persist(addr,len) must both succeed
	// and be safe to call back to back; there's no externally
	// observable difference to assert beyond "doesn't panic and
	// doesn't corrupt memory", since the dispatch internals are
	// exercised directly in internal/flush.
	buf := make([]byte, 128)
	Flush(unsafe.Pointer(&buf[0]), uintptr(len(buf)))
	Drain()
	Persist(unsafe.Pointer(&buf[0]), uintptr(len(buf)))
}

func TestZeroLengthOpsAreNoops(t *testing.T) {
	var x byte = 9
	Flush(unsafe.Pointer(&x), 0)
	Persist(unsafe.Pointer(&x), 0)
	MemcpyPersist(unsafe.Pointer(&x), unsafe.Pointer(&x), 0)
	MemsetPersist(unsafe.Pointer(&x), 1, 0)
	if x != 9 {
		t.Fatalf("zero-length operation touched memory: x=%d", x)
	}
	if err := Msync(unsafe.Pointer(&x), 0); err != nil {
		t.Fatalf("Msync(len=0) = %v, want nil", err)
	}
	if err := DeepFlush(unsafe.Pointer(&x), 0); err != nil {
		t.Fatalf("DeepFlush(len=0) = %v, want nil", err)
	}
}

func TestRegisterUnregisterFindRoundTrip(t *testing.T) {
	const base, length = 0x7f0000000000, 0x1000
	if err := RegisterMapping(unsafe.Pointer(uintptr(base)), length, true, 7, 1); err != nil {
		t.Fatalf("RegisterMapping: %v", err)
	}
	e, ok := FindMapping(unsafe.Pointer(uintptr(base+0x10)), 1)
	if !ok || e.Base != base {
		t.Fatalf("FindMapping = %+v, ok=%v, want base %#x", e, ok, base)
	}
	if err := UnregisterMapping(unsafe.Pointer(uintptr(base)), length); err != nil {
		t.Fatalf("UnregisterMapping: %v", err)
	}
	if _, ok := FindMapping(unsafe.Pointer(uintptr(base+0x10)), 1); ok {
		t.Fatalf("entry still present after register;unregister")
	}
}

func TestIsPmemForceOverride(t *testing.T) {
	t.Setenv("PMEM_IS_PMEM_FORCE", "1")
	if !IsPmem(unsafe.Pointer(uintptr(0x1000)), 0x100) {
		t.Fatalf("IsPmem with PMEM_IS_PMEM_FORCE=1 should return true regardless of registry state")
	}
}

func TestDeepFlushUntrackedRangeFallsBackToMsync(t *testing.T) {
	buf := make([]byte, 4096)
	if err := DeepFlush(unsafe.Pointer(&buf[0]), uintptr(len(buf))); err != nil {
		t.Fatalf("DeepFlush on an untracked heap range: %v", err)
	}
}

func TestErrorUnwrapsToOsCause(t *testing.T) {
	buf := make([]byte, 4096)
	err := Msync(unsafe.Pointer(&buf[0]), 1<<40) // absurd length, well past the mapping
	if err == nil {
		t.Fatalf("Msync over an unmapped absurd range: want error, got nil")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error is not *pmemio.Error: %v", err)
	}
	if perr.Kind != KindOsIoFailure {
		t.Fatalf("Kind = %v, want KindOsIoFailure", perr.Kind)
	}
	if !errors.Is(err, ErrOsIoFailure) {
		t.Fatalf("errors.Is(err, ErrOsIoFailure) = false, want true")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("errors.Is(err, ErrInvalidArgument) = true, want false")
	}
}
