// Package ramfs is the reference in-memory filesystem (spec §4.6,
// component G): an all-volatile tree with full support for regular files,
// directories, symlinks, hard links and extended attributes. It is the
// filesystem against which the path engine's testable properties (spec
// §8) are checked.
package ramfs

import (
	"sync"

	"github.com/jacobsa/timeutil"

	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// FsType implements vfscore.FsType for ramfs. Every mount is independent:
// each Mount call builds a brand-new, empty tree (spec §4.6, mirroring the
// source's RamFsType "no persistence, no shared backing device").
type FsType struct {
	vfscore.BaseFsType
	clock timeutil.Clock

	mu  sync.Mutex
	sbs []*unifs.Superblock
}

var _ vfscore.FsType = (*FsType)(nil)

// New builds a ramfs FsType. clock supplies the "current time" for every
// inode this FsType's mounts create (spec §4.3: the core itself has no
// wall clock).
func New(clock timeutil.Clock) *FsType {
	return &FsType{clock: clock}
}

// Name implements vfscore.FsType.
func (*FsType) Name() string { return "ramfs" }

// Flags implements vfscore.FsType. ramfs needs no backing device.
func (*FsType) Flags() vfsutils.FsTypeFlags { return 0 }

// Mount implements vfscore.FsType: builds a fresh superblock, root
// directory inode and root dentry, ignoring dev/data (ramfs has neither a
// backing device nor mount options).
func (ft *FsType) Mount(flags vfsutils.MountFlags, mountPoint string, dev vfscore.Inode, data []byte) (vfscore.Dentry, error) {
	sb := unifs.NewSuperblock(ft, vfscore.SuperIndependent, ft.clock)
	root := newDirInode(sb, sb.NextInodeNumber(), vfsutils.PermissionFromMode(0o755))
	sb.InsertInode(root.InodeNumber, root)
	rootDentry := unifs.NewRoot(root)
	sb.SetRoot(rootDentry)

	ft.mu.Lock()
	ft.sbs = append(ft.sbs, sb)
	ft.mu.Unlock()
	return rootDentry, nil
}

// KillSB implements vfscore.FsType: rejects any sb not registered by a
// prior Mount call on this FsType, per the source's RamFs::kill_sb, which
// downcasts and retains by Arc::ptr_eq against its tracked sbs.
func (ft *FsType) KillSB(sb vfscore.Superblock) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	for i, known := range ft.sbs {
		if vfscore.Superblock(known) == sb {
			ft.sbs = append(ft.sbs[:i], ft.sbs[i+1:]...)
			return nil
		}
	}
	return errInvalidArgument
}
