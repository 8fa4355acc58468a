package dynfs

import "github.com/os-module/rvfs/vfserr"

var (
	errNoEntry         = vfserr.ENoEntry
	errFileExists      = vfserr.EFileExists
	errInvalidArgument = vfserr.EInvalidArgument
	errNotImplemented  = vfserr.ENotImplemented
)
