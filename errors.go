package pmemio

import "pmemio/internal/pmerr"

// ErrorKind classifies why an operation failed; see the Kind values
// below for spec.md 7's taxonomy.
type ErrorKind = pmerr.Kind

const (
	KindInvalidArgument   = pmerr.InvalidArgument
	KindLockContention    = pmerr.LockContention
	KindAllocationFailure = pmerr.AllocationFailure
	KindOsIoFailure       = pmerr.OsIoFailure
)

// Error is the concrete error type every exported operation in this
// package returns. It unwraps to the underlying cause, so errors.As
// recovers an *Error's Kind and wrapped OS-level cause.
type Error = pmerr.Error

// Sentinel errors, one per Kind, compatible with errors.Is:
// errors.Is(err, ErrOsIoFailure) is true for any *Error of that Kind
// this package returns, regardless of what it wraps.
var (
	ErrInvalidArgument   = pmerr.ErrInvalidArgument
	ErrLockContention    = pmerr.ErrLockContention
	ErrAllocationFailure = pmerr.ErrAllocationFailure
	ErrOsIoFailure       = pmerr.ErrOsIoFailure
)
