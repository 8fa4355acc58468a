package devfs

import (
	"sync"

	"github.com/jacobsa/timeutil"

	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// FsType implements vfscore.FsType for devfs (spec §4.7). Like ramfs,
// devfs needs no backing device of its own — it is itself the tree that
// exposes other devices, resolved through a caller-supplied
// DeviceProvider (spec §14 item 4).
type FsType struct {
	vfscore.BaseFsType
	clock    timeutil.Clock
	provider DeviceProvider

	mu   sync.Mutex
	sb   *unifs.Superblock
	root *dirInode
}

var _ vfscore.FsType = (*FsType)(nil)

// New builds a devfs FsType backed by provider.
func New(clock timeutil.Clock, provider DeviceProvider) *FsType {
	return &FsType{clock: clock, provider: provider}
}

// Name implements vfscore.FsType.
func (*FsType) Name() string { return "devfs" }

// Flags implements vfscore.FsType.
func (*FsType) Flags() vfsutils.FsTypeFlags { return 0 }

// Mount implements vfscore.FsType. devfs is SuperSingle (only one
// superblock may exist for this FsType), so a repeat Mount reuses the
// already-built tree instead of constructing a second one, matching
// dynfs.FsType.Mount's idempotence.
func (ft *FsType) Mount(flags vfsutils.MountFlags, mountPoint string, dev vfscore.Inode, data []byte) (vfscore.Dentry, error) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.sb != nil {
		return ft.sb.RootDentry(), nil
	}
	sb := unifs.NewSuperblock(ft, vfscore.SuperSingle, ft.clock)
	root := newDirInode(sb, sb.NextInodeNumber(), vfsutils.PermissionFromMode(0o755), ft.provider)
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
