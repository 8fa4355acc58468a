package vfscore

import "github.com/os-module/rvfs/vfserr"

// Package-local aliases of the vfserr values this package returns (mirrors
// the teacher's top-level errors.go aliasing bazilfuse errno values). They
// are unexported; callers compare against the vfserr constants.
var (
	errPermissionDenied = vfserr.EPermissionDenied
	errNoEntry          = vfserr.ENoEntry
	errIOError          = vfserr.EIOError
	errFileExists       = vfserr.EFileExists
	errNotDir           = vfserr.ENotDir
	errNotEmpty         = vfserr.ENotEmpty
	errInvalidArgument  = vfserr.EInvalidArgument
	errNameTooLong      = vfserr.ENameTooLong
	errNotImplemented   = vfserr.ENotImplemented
	errNoDevice         = vfserr.ENoDevice
	errIsDir            = vfserr.EIsDir
	errBusy             = vfserr.EBusy
)
