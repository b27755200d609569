// Package xfer implements the bulk-transfer primitives of spec.md 4.3:
// durable memmove/memcpy/memset, each with a "nodrain" variant that
// leaves the final fence to the caller and a "persist" variant that
// includes it.
//
// Below cpucap.Record.MovntThreshold bytes, and whenever the transfer
// isn't safe to walk forward (an overlapping memmove with dst > src),
// every byte is written with a plain store and flushed through the
// dispatch in package flush. At or above the threshold, and only when
// the walk is forward-safe, the bulk of the range is written with
// non-temporal streaming stores that bypass the cache and need no
// flush at all, bracketed by a cache-line-aligned prolog/tail still
// written with the scalar path and a single mandatory SFence at the
// end.
package xfer

import (
	"unsafe"

	"pmemio/internal/cpucap"
	"pmemio/internal/flush"
	"pmemio/internal/pmutil"
)

const (
	cacheLine  = 64
	streamBody = 128 // eight 16-byte streaming stores per aligned chunk
)

// MemmoveNodrain copies n bytes from src to dst, correctly handling
// overlap, and flushes every touched cache line, but does not issue the
// final fence: the caller must call a Drain (e.g. via a later
// *Persist call or flush.Drain) before treating the range as durable.
func MemmoveNodrain(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr) {
	memmove(rec, dst, src, n, false)
}

// MemmovePersist is MemmoveNodrain followed by a drain.
func MemmovePersist(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr) {
	memmove(rec, dst, src, n, true)
}

// MemcpyNodrain is MemmoveNodrain for the non-overlapping contract of
// memcpy. The overlap test this package runs is cheap and always
// correct, so callers that know their ranges don't overlap gain
// nothing by skipping it; this is here to match the symmetric API
// spec.md 4.3 describes, not because the implementation differs.
func MemcpyNodrain(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr) {
	memmove(rec, dst, src, n, false)
}

// MemcpyPersist is MemcpyNodrain followed by a drain.
func MemcpyPersist(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr) {
	memmove(rec, dst, src, n, true)
}

// MemsetNodrain fills n bytes at dst with c and flushes every touched
// cache line, without issuing the final fence.
func MemsetNodrain(rec *cpucap.Record, dst unsafe.Pointer, c byte, n uintptr) {
	memset(rec, dst, c, n, false)
}

// MemsetPersist is MemsetNodrain followed by a drain.
func MemsetPersist(rec *cpucap.Record, dst unsafe.Pointer, c byte, n uintptr) {
	memset(rec, dst, c, n, true)
}

// forwardSafe reports whether walking dst and src from low to high
// addresses is safe: either the ranges don't overlap, or dst is at or
// before src so the read of src[i] always happens before it could be
// clobbered by the write to dst[i]. Computed as unsigned subtraction
// per spec.md 4.3, so a dst below src wraps to a huge value and is
// always reported safe.
func forwardSafe(dst, src unsafe.Pointer, n uintptr) bool {
	return uintptr(dst)-uintptr(src) >= n
}

func memmove(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr, drain bool) {
	if n == 0 || dst == src {
		return
	}
	if rec.StreamingStores && n >= rec.MovntThreshold && forwardSafe(dst, src, n) {
		streamingCopy(rec, dst, src, n)
		return
	}
	// Either too small for the streaming path, streaming stores aren't
	// available, or dst overlaps src from above: copy() implements
	// memmove semantics regardless of direction, so this is correct
	// even when a manual forward walk would not be.
	scalarCopy(rec, dst, src, n)
	if drain {
		flush.Drain(rec)
	}
}

func memset(rec *cpucap.Record, dst unsafe.Pointer, c byte, n uintptr, drain bool) {
	if n == 0 {
		return
	}
	if rec.StreamingStores && n >= rec.MovntThreshold {
		streamingFill(rec, dst, c, n)
		return
	}
	scalarFill(rec, dst, c, n)
	if drain {
		flush.Drain(rec)
	}
}

func scalarCopy(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr) {
	dstSlice := unsafe.Slice((*byte)(dst), n)
	srcSlice := unsafe.Slice((*byte)(src), n)
	copy(dstSlice, srcSlice)
	flush.Flush(rec, dst, n)
}

func scalarFill(rec *cpucap.Record, dst unsafe.Pointer, c byte, n uintptr) {
	s := unsafe.Slice((*byte)(dst), n)
	for i := range s {
		s[i] = c
	}
	flush.Flush(rec, dst, n)
}

// streamingCopy walks forward: a scalar+flush prolog up to the next
// 64-byte boundary (MOVNTDQ requires 16-byte-aligned addresses, and 64
// is a multiple of 16), an aligned body of 128-byte chunks written as
// eight 16-byte non-temporal stores, a 16-byte tail, a 4-byte sub-tail,
// a final scalar+flush byte remainder, and a mandatory trailing fence.
func streamingCopy(rec *cpucap.Record, dst, src unsafe.Pointer, n uintptr) {
	d, s := uintptr(dst), uintptr(src)

	if prolog := pmutil.Min(pmutil.RoundUp(d, cacheLine)-d, n); prolog > 0 {
		scalarCopy(rec, unsafe.Pointer(d), unsafe.Pointer(s), prolog)
		d += prolog
		s += prolog
		n -= prolog
	}

	for n >= streamBody {
		for i := uintptr(0); i < streamBody; i += 16 {
			movntStore16(unsafe.Pointer(d+i), unsafe.Pointer(s+i))
		}
		d += streamBody
		s += streamBody
		n -= streamBody
	}

	for n >= 16 {
		movntStore16(unsafe.Pointer(d), unsafe.Pointer(s))
		d += 16
		s += 16
		n -= 16
	}

	for n >= 4 {
		v := *(*uint32)(unsafe.Pointer(s))
		movntStore4(unsafe.Pointer(d), v)
		d += 4
		s += 4
		n -= 4
	}

	if n > 0 {
		scalarCopy(rec, unsafe.Pointer(d), unsafe.Pointer(s), n)
	}

	flush.SFence()
}

// streamingFill mirrors streamingCopy for a constant fill byte.
func streamingFill(rec *cpucap.Record, dst unsafe.Pointer, c byte, n uintptr) {
	d := uintptr(dst)
	word := uint32(c) | uint32(c)<<8 | uint32(c)<<16 | uint32(c)<<24

	if prolog := pmutil.Min(pmutil.RoundUp(d, cacheLine)-d, n); prolog > 0 {
		scalarFill(rec, unsafe.Pointer(d), c, prolog)
		d += prolog
		n -= prolog
	}

	for n >= streamBody {
		for i := uintptr(0); i < streamBody; i += 16 {
			movntFill16(unsafe.Pointer(d+i), word)
		}
		d += streamBody
		n -= streamBody
	}

	for n >= 16 {
		movntFill16(unsafe.Pointer(d), word)
		d += 16
		n -= 16
	}

	for n >= 4 {
		movntStore4(unsafe.Pointer(d), word)
		d += 4
		n -= 4
	}

	if n > 0 {
		scalarFill(rec, unsafe.Pointer(d), c, n)
	}

	flush.SFence()
}
