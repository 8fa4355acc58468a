package dynfs

import (
	"sync"

	"github.com/jacobsa/timeutil"

	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// FsType implements vfscore.FsType for dynfs: a synthetic tree built at
// mount time and mutated only through AddFile/AddDir/Remove (on FsType
// and on the Dir handles AddDir returns)
// (spec §4.8). Unlike ramfs, a second Mount call on the same FsType
// returns the existing tree instead of building a new one, matching the
// source's DynFs::mount idempotence (a dynfs instance models one
// singleton synthetic filesystem, e.g. a sysfs or procfs tree).
type FsType struct {
	vfscore.BaseFsType
	name  string
	clock timeutil.Clock

	mu   sync.Mutex
	sb   *unifs.Superblock
	root *dirInode
}

var _ vfscore.FsType = (*FsType)(nil)

// New builds a dynfs FsType named name (e.g. "sysfs", "procfs").
func New(name string, clock timeutil.Clock) *FsType {
	return &FsType{name: name, clock: clock}
}

// Name implements vfscore.FsType.
func (ft *FsType) Name() string { return ft.name }

// Flags implements vfscore.FsType.
func (*FsType) Flags() vfsutils.FsTypeFlags { return 0 }

// Mount implements vfscore.FsType.
func (ft *FsType) Mount(flags vfsutils.MountFlags, mountPoint string, dev vfscore.Inode, data []byte) (vfscore.Dentry, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.sb != nil {
		return ft.sb.RootDentry(), nil
	}
	sb := unifs.NewSuperblock(ft, vfscore.SuperSingle, ft.clock)
	root := newDirInode(sb, sb.NextInodeNumber(), vfsutils.PermissionFromMode(0o755))
	sb.InsertInode(root.InodeNumber, root)
	rootDentry := unifs.NewRoot(root)
	sb.SetRoot(rootDentry)
	ft.sb = sb
	ft.root = root
	return rootDentry, nil
}

// KillSB implements vfscore.FsType: rejects sb unless it is the one
// superblock currently registered by Mount.
func (ft *FsType) KillSB(sb vfscore.Superblock) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.sb == nil || vfscore.Superblock(ft.sb) != sb {
		return errInvalidArgument
	}
	ft.sb = nil
	ft.root = nil
	return nil
}

// AddFile exposes the root directory's manual-mutation API (spec §14
// item 5) so callers can populate a mounted tree. Before the first Mount,
// or after KillSB, there is no root and it fails with ENoEntry.
func (ft *FsType) AddFile(name string, real vfscore.Inode, perm vfsutils.Permission) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.root == nil {
		return errNoEntry
	}
	return ft.root.AddFile(name, real, perm)
}

// AddDir adds a synthetic subdirectory at the tree's root.
func (ft *FsType) AddDir(name string, perm vfsutils.Permission) (*Dir, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.root == nil {
		return nil, errNoEntry
	}
	d, err := ft.root.AddDir(name, perm)
	if err != nil {
		return nil, err
	}
	return &Dir{inode: d}, nil
}

// Remove deletes the root-level entry named name.
func (ft *FsType) Remove(name string) error {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.root == nil {
		return errNoEntry
	}
	return ft.root.Remove(name)
}

// Dir is a handle onto a synthetic subdirectory, letting callers build
// out a multi-level tree (e.g. /sys/class/net/eth0) through the same
// manual API as the root.
type Dir struct {
	inode *dirInode
}

// AddFile registers real under name inside this subdirectory.
func (d *Dir) AddFile(name string, real vfscore.Inode, perm vfsutils.Permission) error {
	return d.inode.AddFile(name, real, perm)
}

// AddDir creates a nested synthetic subdirectory.
func (d *Dir) AddDir(name string, perm vfsutils.Permission) (*Dir, error) {
	sub, err := d.inode.AddDir(name, perm)
	if err != nil {
		return nil, err
	}
	return &Dir{inode: sub}, nil
}

// Remove deletes the entry named name from this subdirectory.
func (d *Dir) Remove(name string) error {
	return d.inode.Remove(name)
}
