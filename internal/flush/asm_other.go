//go:build !amd64

package flush

import "unsafe"

// Non-amd64 builds have none of these instructions. cpucap.Probe keeps
// its FlushCLFlush default there (its CPU checks all report false), so
// flushLine does reach clflushLine; every body here is a no-op.
func clflushLine(line unsafe.Pointer)    {}
func clflushoptLine(line unsafe.Pointer) {}
func clwbLine(line unsafe.Pointer)       {}
func sfence()                            {}
