package vfspath

import "github.com/os-module/rvfs/vfserr"

var (
	errNoEntry         = vfserr.ENoEntry
	errFileExists      = vfserr.EFileExists
	errNotDir          = vfserr.ENotDir
	errInvalidArgument = vfserr.EInvalidArgument
	errBusy            = vfserr.EBusy
	errNameTooLong     = vfserr.ENameTooLong
)
