// Package vfserr defines the closed error vocabulary shared by every
// component of the VFS core (spec §4.1). Every value renders as the POSIX
// errno number a kernel would report for the equivalent syscall failure.
package vfserr

import (
	"golang.org/x/sys/unix"
)

// Errno is a member of the VFS core's closed error enumeration. It
// implements error and is comparable with ==, so callers can switch on it
// directly instead of using errors.Is.
type Errno int

const (
	// EPermissionDenied corresponds to EACCES: the caller lacks the
	// permission bits required for the operation.
	EPermissionDenied Errno = 13
	// ENoEntry corresponds to ENOENT: no such file or directory.
	ENoEntry Errno = 2
	// EIOError corresponds to EIO: the backing device failed.
	EIOError Errno = 5
	// EFileExists corresponds to EEXIST.
	EFileExists Errno = 17
	// ENotDir corresponds to ENOTDIR.
	ENotDir Errno = 20
	// ENotEmpty corresponds to ENOTEMPTY.
	ENotEmpty Errno = 39
	// EOutOfMemory corresponds to ENOMEM.
	EOutOfMemory Errno = 12
	// ENoSpace corresponds to ENOSPC.
	ENoSpace Errno = 28
	// EInvalidArgument corresponds to EINVAL.
	EInvalidArgument Errno = 22
	// ENameTooLong corresponds to ENAMETOOLONG.
	ENameTooLong Errno = 36
	// ENotImplemented corresponds to ENOSYS. Reserved for operations a
	// given inode kind chooses not to support; never synthesized by the
	// path engine (spec §7).
	ENotImplemented Errno = 38
	// ENoDevice corresponds to ENODEV.
	ENoDevice Errno = 19
	// ENotATerminal corresponds to ENOTTY.
	ENotATerminal Errno = 25
	// EIsDir corresponds to EISDIR.
	EIsDir Errno = 21
	// EAccessDenied corresponds to EACCES, distinct from EPermissionDenied
	// only in the caller's intent (ownership vs. mode bits); the VFS core
	// does not distinguish the two at the wire level.
	EAccessDenied Errno = 13
	// EBusy corresponds to EBUSY: rename source is cwd or root.
	EBusy Errno = 16
	// EReadOnly corresponds to EROFS.
	EReadOnly Errno = 30
	// EInterrupted corresponds to EINTR.
	EInterrupted Errno = 4
	// EBrokenPipe corresponds to EPIPE.
	EBrokenPipe Errno = 32
	// EIllegalSeek corresponds to ESPIPE.
	EIllegalSeek Errno = 29
)

var names = map[Errno]string{
	EPermissionDenied: "permission denied",
	ENoEntry:          "no such file or directory",
	EIOError:          "input/output error",
	EFileExists:       "file exists",
	ENotDir:           "not a directory",
	ENotEmpty:         "directory not empty",
	EOutOfMemory:      "out of memory",
	ENoSpace:          "no space left on device",
	EInvalidArgument:  "invalid argument",
	ENameTooLong:      "file name too long",
	ENotImplemented:   "function not implemented",
	ENoDevice:         "no such device",
	ENotATerminal:     "inappropriate ioctl for device",
	EIsDir:            "is a directory",
	EBusy:             "device or resource busy",
	EReadOnly:         "read-only file system",
	EInterrupted:      "interrupted system call",
	EBrokenPipe:       "broken pipe",
	EIllegalSeek:      "illegal seek",
}

// Error implements the error interface.
func (e Errno) Error() string {
	if s, ok := names[e]; ok {
		return s
	}
	return unix.Errno(e).Error()
}

// Unix converts e to the equivalent golang.org/x/sys/unix errno, so callers
// that need to compare against unix.ENOENT and friends can do so.
func (e Errno) Unix() unix.Errno {
	return unix.Errno(e)
}

// Is lets errors.Is(err, vfserr.ENoEntry) and friends work against a wrapped
// error chain.
func (e Errno) Is(target error) bool {
	other, ok := target.(Errno)
	return ok && other == e
}
