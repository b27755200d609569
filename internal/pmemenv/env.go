// Package pmemenv reads the small, fixed set of PMEM_* environment
// variables recognised by this library (spec.md 6). Every knob is
// read-once, at probe time, except PMEM_IS_PMEM_FORCE which is read
// lazily on the first call to IsPmem (spec.md 4.1 step 7), and
// PMEM_DEBUG, which diag.Logf reads on every call.
package pmemenv

import (
	"os"
	"strconv"
)

const (
	varNoCLFlushOpt    = "PMEM_NO_CLFLUSHOPT"
	varNoCLWB          = "PMEM_NO_CLWB"
	varNoFlush         = "PMEM_NO_FLUSH"
	varNoMovnt         = "PMEM_NO_MOVNT"
	varMovntThreshold  = "PMEM_MOVNT_THRESHOLD"
	varIsPmemForce     = "PMEM_IS_PMEM_FORCE"
	varDebug           = "PMEM_DEBUG"
	disableValue       = "1"
	forceNeverValue    = "0"
	forceAlwaysValue   = "1"
)

// NoCLFlushOpt reports whether CLFLUSHOPT support should be ignored even
// if the CPU reports it.
func NoCLFlushOpt() bool { return os.Getenv(varNoCLFlushOpt) == disableValue }

// NoCLWB reports whether CLWB support should be ignored even if the CPU
// reports it.
func NoCLWB() bool { return os.Getenv(varNoCLWB) == disableValue }

// NoFlush reports whether cache-line flushing should be disabled
// entirely (the flush function becomes a no-op; drain still fences).
func NoFlush() bool { return os.Getenv(varNoFlush) == disableValue }

// NoMovnt reports whether streaming-store transfer variants should be
// disabled, leaving only the scalar memmove/memset-then-flush path.
func NoMovnt() bool { return os.Getenv(varNoMovnt) == disableValue }

// MovntThreshold parses PMEM_MOVNT_THRESHOLD as a non-negative integer
// and returns it; on a missing or malformed value it returns def
// unchanged, matching spec.md 4.1 step 5 ("on success, replace the
// default").
func MovntThreshold(def uintptr) uintptr {
	s, ok := os.LookupEnv(varMovntThreshold)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return uintptr(n)
}

// IsPmemForce parses PMEM_IS_PMEM_FORCE. set is true iff the variable
// held a recognised value ("0" or "1"); any other value (including
// unset) leaves set false and answer meaningless.
func IsPmemForce() (set bool, answer bool) {
	switch os.Getenv(varIsPmemForce) {
	case forceNeverValue:
		return true, false
	case forceAlwaysValue:
		return true, true
	default:
		return false, false
	}
}

// Debug reports whether verbose diagnostic logging was requested. This
// is not part of spec.md's six-variable surface; it follows the same
// PMEM_* convention to gate the debug log idiom this codebase already
// uses elsewhere (gated fmt.Printf calls, e.g. biscuit/src/stats).
func Debug() bool { return os.Getenv(varDebug) == disableValue }
