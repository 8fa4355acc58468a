package unifs

import "github.com/os-module/rvfs/vfserr"

var (
	errNoEntry         = vfserr.ENoEntry
	errFileExists      = vfserr.EFileExists
	errNotDir          = vfserr.ENotDir
	errInvalidArgument = vfserr.EInvalidArgument
	errNotImplemented  = vfserr.ENotImplemented
)
