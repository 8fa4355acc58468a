package devfs

import (
	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// dirInode is a devfs directory. Unlike ramfs, it only ever creates
// device nodes or further subdirectories (spec §4.7; grounded on the
// source's DevFsDirInode, extended per spec §14 item 4 to allow nested
// directories the same way the source's dir.rs create() does).
type dirInode struct {
	vfscore.BaseInode
	unifs.Basic

	provider DeviceProvider
	children *unifs.Children
}

var _ vfscore.Inode = (*dirInode)(nil)

func newDirInode(sb *unifs.Superblock, number uint64, perm vfsutils.Permission, provider DeviceProvider) *dirInode {
	return &dirInode{
		Basic:    unifs.NewBasic(sb, number, perm),
		provider: provider,
		children: unifs.NewChildren(),
	}
}

func (d *dirInode) InodeType() vfsutils.NodeType { return vfsutils.NodeDir }

func (d *dirInode) GetAttr() (vfsutils.FileStat, error) {
	stat := d.BaseStat()
	stat.Size = 4096
	stat.Mode |= uint32(vfsutils.NodeDir) << 12
	return stat, nil
}

// Create implements vfscore.Inode: ty == NodeDir needs no rdev; every
// device type (char/block/fifo/socket) requires one (spec §4.7).
func (d *dirInode) Create(name string, ty vfsutils.NodeType, perm vfsutils.Permission, rdev *uint32) (vfscore.Inode, error) {
	if ty != vfsutils.NodeDir && rdev == nil {
		return nil, errInvalidArgument
	}

	sb := d.Basic.Sb
	number := sb.NextInodeNumber()

	var inode vfscore.Inode
	switch ty {
	case vfsutils.NodeDir:
		inode = newDirInode(sb, number, perm, d.provider)
	case vfsutils.NodeBlockDevice, vfsutils.NodeCharDevice, vfsutils.NodeFifo, vfsutils.NodeSocket:
		inode = newDevInode(sb, number, *rdev, ty, d.provider)
	default:
		return nil, errInvalidArgument
	}

	if err := d.children.Add(name, number, ty); err != nil {
		return nil, err
	}
	sb.InsertInode(number, inode)
	d.touchMtime()
	return inode, nil
}

// Lookup implements vfscore.Inode.
func (d *dirInode) Lookup(name string) (vfscore.Inode, error) {
	ino, _, ok := d.children.Find(name)
	if !ok {
		return nil, errNoEntry
	}
	inode, ok := d.Basic.Sb.GetInode(ino)
	if !ok {
		return nil, errNoEntry
	}
	return inode, nil
}

// Readdir implements vfscore.Inode.
func (d *dirInode) Readdir(k int) (vfsutils.DirEntry, bool, error) {
	e, ok := d.children.Readdir(k)
	return e, ok, nil
}
