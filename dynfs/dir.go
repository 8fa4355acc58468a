package dynfs

import (
	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// dirInode is a synthetic directory whose contents are populated only
// through AddFile/AddDir/Remove, never through the VFS Create operation
// (spec §4.8/§14 item 5; grounded on the source's DynFsDirInode, whose
// create() always returns NoSys).
type dirInode struct {
	vfscore.BaseInode
	unifs.Basic

	children *unifs.Children
}

var _ vfscore.Inode = (*dirInode)(nil)

func newDirInode(sb *unifs.Superblock, number uint64, perm vfsutils.Permission) *dirInode {
	return &dirInode{
		Basic:    unifs.NewBasic(sb, number, perm),
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

// AddFile registers real under name in this directory, wrapping it in a
// synthetic fileInode so it gains its own inode number within this mount
// (spec §14 item 5, source's add_file_manually).
func (d *dirInode) AddFile(name string, real vfscore.Inode, perm vfsutils.Permission) error {
	sb := d.Basic.Sb
	number := sb.NextInodeNumber()
	inode := newFileInode(sb, number, perm, real)
	if err := d.children.Add(name, number, vfsutils.NodeFile); err != nil {
		return err
	}
	sb.InsertInode(number, inode)
	return nil
}

// AddDir creates a new synthetic subdirectory named name (source's
// add_dir_manually) and returns it so callers can populate it further.
func (d *dirInode) AddDir(name string, perm vfsutils.Permission) (*dirInode, error) {
	sb := d.Basic.Sb
	number := sb.NextInodeNumber()
	inode := newDirInode(sb, number, perm)
	if err := d.children.Add(name, number, vfsutils.NodeDir); err != nil {
		return nil, err
	}
	sb.InsertInode(number, inode)
	return inode, nil
}

// Remove detaches the entry named name and evicts its inode from the
// superblock cache (source's remove_manually).
func (d *dirInode) Remove(name string) error {
	ino, ok := d.children.Remove(name)
	if !ok {
		return errNoEntry
	}
	d.Basic.Sb.RemoveInode(ino)
	return nil
}
