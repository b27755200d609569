// Package flush implements the cache-line flush dispatch of spec.md
// 4.2: flush, drain, persist, and msync. Flush and drain switch on the
// dispatch tags chosen once by cpucap.Probe; the CPU is never
// re-probed per call.
package flush

import (
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"pmemio/internal/cpucap"
	"pmemio/internal/pmutil"
)

// cacheLineSize is the hard constant of spec.md 6: flush and alignment
// operate in 64-byte units.
const cacheLineSize = 64

// Flush issues one flush instruction per cache line intersecting
// [addr, addr+length), per the dispatch tag in rec. len==0 is a no-op.
func Flush(rec *cpucap.Record, addr unsafe.Pointer, length uintptr) {
	if length == 0 {
		return
	}
	start := pmutil.RoundDown(uintptr(addr), uintptr(cacheLineSize))
	end := uintptr(addr) + length
	for off := start; off < end; off += cacheLineSize {
		flushLine(rec, unsafe.Pointer(off))
	}
}

func flushLine(rec *cpucap.Record, line unsafe.Pointer) {
	switch rec.FlushKind {
	case cpucap.FlushNone:
		// no-op: either flushing was disabled, or no hardware flush
		// instruction was detected.
	case cpucap.FlushCLFlush:
		clflushLine(line)
	case cpucap.FlushCLFlushOpt:
		clflushoptLine(line)
	case cpucap.FlushCLWB:
		clwbLine(line)
	}
}

// Drain issues the pre-drain fence chosen by the capability probe.
// clflush is itself serializing on the cores that matter, so that path
// needs no fence; clflushopt/clwb and the no-flush path both require an
// sfence before later stores are guaranteed ordered after this call.
func Drain(rec *cpucap.Record) {
	if rec.FenceKind == cpucap.FenceSFence {
		sfence()
	}
}

// Persist is flush followed by drain.
func Persist(rec *cpucap.Record, addr unsafe.Pointer, length uintptr) {
	Flush(rec, addr, length)
	Drain(rec)
}

// SFence issues an unconditional store fence. Non-temporal streaming
// stores are weakly ordered with respect to later instructions on
// every platform that has them, independent of the FenceKind a
// cpucap.Record carries for the flush-and-drain path; xfer's
// streaming-store primitives call this directly rather than routing
// through Drain.
func SFence() { sfence() }

// HasHWDrain reports whether the platform has a dedicated hardware
// drain instruction distinct from a full store fence. x86 has none:
// sfence is the only primitive available, so this is always false
// (spec.md 6).
func HasHWDrain() bool { return false }

// Msync rounds addr down and length up to page granularity and issues
// a full synchronous page-cache sync, matching spec.md 4.2.
func Msync(addr unsafe.Pointer, length uintptr) error {
	if length == 0 {
		return nil
	}
	pageSize := uintptr(os.Getpagesize())
	start := pmutil.RoundDown(uintptr(addr), pageSize)
	end := pmutil.RoundUp(uintptr(addr)+length, pageSize)
	b := unsafe.Slice((*byte)(unsafe.Pointer(start)), end-start)
	return unix.Msync(b, unix.MS_SYNC)
}
