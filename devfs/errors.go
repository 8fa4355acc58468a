package devfs

import "github.com/os-module/rvfs/vfserr"

var (
	errNoEntry         = vfserr.ENoEntry
	errFileExists      = vfserr.EFileExists
	errInvalidArgument = vfserr.EInvalidArgument
	errNoDevice        = vfserr.ENoDevice
	errNotImplemented  = vfserr.ENotImplemented
)
