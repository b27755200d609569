//go:build amd64

package flush

import "unsafe"

// clflushLine, clflushoptLine, clwbLine and sfence are implemented in
// asm_amd64.s. The Go assembler has no CLFLUSHOPT/CLWB/SFENCE mnemonics
// on every supported toolchain version, so the instructions are emitted
// as raw opcode bytes via BYTE directives; see asm_amd64.s for the
// encoding of each.

//go:noescape
func clflushLine(line unsafe.Pointer)

//go:noescape
func clflushoptLine(line unsafe.Pointer)

//go:noescape
func clwbLine(line unsafe.Pointer)

//go:noescape
func sfence()
