package vfscore

import "github.com/os-module/rvfs/vfsutils"

// SuperType describes how superblocks of a given FsType are keyed (spec §3
// Superblock, and original_source/vfscore/src/superblock.rs SuperType).
type SuperType int

const (
	// SuperSingle: only one such superblock may exist for the FsType.
	SuperSingle SuperType = iota
	// SuperSingleReconfigure: like SuperSingle, but mounting again
	// reconfigures the existing superblock instead of reusing it as is.
	SuperSingleReconfigure
	// SuperKeyed: superblocks with distinct mount data may coexist.
	SuperKeyed
	// SuperIndependent: every mount gets its own fresh superblock.
	SuperIndependent
	// SuperBlockDeviceKeyed: superblocks are keyed by backing device.
	SuperBlockDeviceKeyed
)

// FsType is a static descriptor of a filesystem kind (spec §3/§4.2). One
// FsType instance is shared by every mount of that kind and lives for the
// lifetime of the process; Mount spins up (or reuses) a Superblock and
// returns its root Dentry.
type FsType interface {
	// Mount creates or reuses a superblock for mountPoint and returns its
	// root dentry. dev is the backing device inode, nil when the kind does
	// not require one. data is opaque mount configuration.
	Mount(flags vfsutils.MountFlags, mountPoint string, dev Inode, data []byte) (Dentry, error)

	// KillSB releases sb. Once it has returned nil for sb, a second call
	// with the same (already-released) superblock has no further effect
	// and returns EInvalidArgument.
	KillSB(sb Superblock) error

	// Flags reports the static capability flags of this filesystem kind.
	Flags() vfsutils.FsTypeFlags

	// Name is the stable identifier used in diagnostics.
	Name() string
}

// BaseFsType embeds into a concrete FsType to supply the REQUIRES_DEV
// precondition check every Mount implementation needs, mirroring the
// teacher's NotImplementedFileSystem embedding trick.
type BaseFsType struct{}

// CheckDev validates a backing device against flags, per spec §4.2: if
// REQUIRES_DEV is set, a nil device is ENoDevice; a non-nil device that is
// not a block device is EInvalidArgument.
func (BaseFsType) CheckDev(flags vfsutils.FsTypeFlags, dev Inode) error {
	if flags&vfsutils.FsRequiresDev == 0 {
		return nil
	}
	if dev == nil {
		return errNoDevice
	}
	if dev.InodeType() != vfsutils.NodeBlockDevice {
		return errInvalidArgument
	}
	return nil
}
