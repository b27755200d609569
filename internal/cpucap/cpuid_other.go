//go:build !amd64

package cpucap

// Non-amd64 builds have none of the x86 cache-line instructions this
// library is built around; the capability probe reports the most
// pessimistic answers for all of them, matching spec.md 6's
// has_hw_drain()==false guidance generalized to the whole instruction set.
func hasCLFlush() bool        { return false }
func hasCLFlushOpt() bool     { return false }
func hasCLWB() bool           { return false }
func hasStreamingStores() bool { return false }
