package devfs

import "github.com/os-module/rvfs/vfscore"

// DeviceProvider resolves a device number to the inode that actually
// backs its I/O (spec §4.7; grounded on the source's DevKernelProvider
// trait's rdev2device). devfs itself stores no bytes: every read/write/
// poll/ioctl/flush/fsync on a device inode is delegated through the
// Inode Provider returns.
type DeviceProvider interface {
	// Rdev2Device resolves rdev to its backing inode, or ok == false if
	// no device is registered under that number (ENoDevice, spec §4.7).
	Rdev2Device(rdev uint32) (inode vfscore.Inode, ok bool)
}
