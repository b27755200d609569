//go:build amd64

package cpucap

// cpuid executes the CPUID instruction with the given leaf/subleaf and
// returns the four result registers. Implemented in cpuid_amd64.s.
// This is the one CPUID probing primitive spec.md 1 treats as an
// external collaborator ("assumed available as free functions
// returning booleans"); we still own a tiny implementation of it since
// a standalone library, unlike the original C sources, has no
// surrounding codebase to borrow one from.
//
//go:noescape
func cpuid(ax, cx uint32) (eax, ebx, ecx, edx uint32)

// leaf 1, EDX bits.
const (
	edxCLFSH = 1 << 19
	edxSSE2  = 1 << 26
)

// leaf 7 subleaf 0, EBX bits.
const (
	ebxCLFlushOpt = 1 << 23
	ebxCLWB       = 1 << 24
)

func hasCLFlush() bool {
	_, _, _, edx := cpuid(1, 0)
	return edx&edxCLFSH != 0
}

func hasCLFlushOpt() bool {
	_, ebx, _, _ := cpuid(7, 0)
	return ebx&ebxCLFlushOpt != 0
}

func hasCLWB() bool {
	_, ebx, _, _ := cpuid(7, 0)
	return ebx&ebxCLWB != 0
}

// hasStreamingStores reports whether MOVNTDQ/MOVNTI are available.
// SSE2 is a baseline requirement for amd64 in the Go toolchain, so this
// is normally true; the check is kept explicit for clarity and for
// PMEM_NO_MOVNT-style testing with a stubbed cpuid.
func hasStreamingStores() bool {
	_, _, _, edx := cpuid(1, 0)
	return edx&edxSSE2 != 0
}
