//go:build amd64

package xfer

import "unsafe"

// movntStore16, movntStore4 and movntFill16 are implemented in
// asm_amd64.s using the non-temporal (streaming) store instructions
// MOVNTDQ and MOVNTI, which bypass the cache entirely: data written
// through them never needs a later CLFLUSH/CLFLUSHOPT/CLWB, only the
// trailing SFENCE the caller is responsible for.

//go:noescape
func movntStore16(dst, src unsafe.Pointer)

//go:noescape
func movntStore4(dst unsafe.Pointer, v uint32)

//go:noescape
func movntFill16(dst unsafe.Pointer, w uint32)
