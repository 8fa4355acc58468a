package ramfs

import "github.com/os-module/rvfs/vfserr"

var (
	errNoEntry         = vfserr.ENoEntry
	errFileExists      = vfserr.EFileExists
	errNotDir          = vfserr.ENotDir
	errIsDir           = vfserr.EIsDir
	errNotEmpty        = vfserr.ENotEmpty
	errInvalidArgument = vfserr.EInvalidArgument
	errNotImplemented  = vfserr.ENotImplemented
)
