package vfscore

import "github.com/os-module/rvfs/vfsutils"

// TimeField names which timestamp UpdateTime should refresh (spec §4.3).
type TimeField int

const (
	TimeAccess TimeField = iota
	TimeModify
	TimeChange
	TimeCreate
)

// InodeAttr carries the subset of attributes SetAttr should apply; nil
// fields are left unchanged (spec §4.3 set_attr, §9 truncate permission
// note).
type InodeAttr struct {
	Mode  *vfsutils.Permission
	Size  *uint64
	Atime *vfsutils.TimeSpec
	Mtime *vfsutils.TimeSpec
	Ctime *vfsutils.TimeSpec
	Uid   *uint32
	Gid   *uint32
}

// Inode is the universal file object (spec §3/§4.3), polymorphic over
// {regular, directory, symlink, char/block device, FIFO, socket}. A single
// fat interface is used, exactly like the teacher's fuse.FileSystem: every
// concrete inode embeds BaseInode so unimplemented operations default to
// ENOSYS (vfserr.ENotImplemented) and a kind only overrides what it
// actually supports.
type Inode interface {
	// GetSuperBlock returns the superblock owning this inode.
	GetSuperBlock() (Superblock, error)
	// GetAttr returns the inode's observable stat record.
	GetAttr() (vfsutils.FileStat, error)
	// SetAttr applies the non-nil fields of attr.
	SetAttr(attr InodeAttr) error
	// NodePerm returns the inode's current permission bits.
	NodePerm() vfsutils.Permission
	// InodeType reports which kind of node this is.
	InodeType() vfsutils.NodeType
	// UpdateTime refreshes one timestamp field to now. now is supplied by
	// the caller; the core itself assumes no clock (spec §4.3).
	UpdateTime(which TimeField, now vfsutils.TimeSpec) error

	// ListXattr lists the names of this inode's extended attributes.
	ListXattr() ([]string, error)
	// GetXattr returns the value stored under name.
	GetXattr(name string) ([]byte, error)
	// SetXattr stores value under name, honoring XattrCreate/XattrReplace.
	SetXattr(name string, value []byte, flags vfsutils.XattrFlags) error
	// RemoveXattr deletes the attribute stored under name.
	RemoveXattr(name string) error

	// Create adds a new child of type ty. Directory-only. rdev is required
	// (non-nil) for device types.
	Create(name string, ty vfsutils.NodeType, perm vfsutils.Permission, rdev *uint32) (Inode, error)
	// Mkdir is sugar for Create with ty == NodeDir.
	Mkdir(name string, perm vfsutils.Permission) (Inode, error)
	// Lookup resolves name among this directory's children via the
	// concrete filesystem's backing store (not the dentry cache).
	Lookup(name string) (Inode, error)
	// Unlink removes the child edge named name, decrementing its target's
	// link count.
	Unlink(name string) error
	// Rmdir removes the empty subdirectory named name.
	Rmdir(name string) error
	// Link adds a new hard-link edge named name pointing at src, which
	// must be a non-directory inode on the same superblock.
	Link(name string, src Inode) (Inode, error)
	// Symlink creates a new symlink named name whose target is target.
	Symlink(name string, target string) (Inode, error)
	// RenameTo atomically moves (or, with RenameExchange, swaps) the edge
	// named oldName onto newParent/newName.
	RenameTo(oldName string, newParent Inode, newName string, flags vfsutils.RenameFlags) error
	// Readdir returns the k-th entry in this directory's native order, or
	// ok == false once k is past the last entry.
	Readdir(k int) (entry vfsutils.DirEntry, ok bool, err error)

	// ReadAt reads into buf starting at offset. File-only.
	ReadAt(buf []byte, offset int64) (int, error)
	// WriteAt writes buf at offset, zero-filling any gap before offset.
	WriteAt(buf []byte, offset int64) (int, error)
	// Truncate resizes the file to size, zero-filling on growth.
	Truncate(size uint64) error
	// Flush is called when a handle referencing this inode is closed.
	Flush() error
	// Fsync persists any buffered state.
	Fsync() error
	// Poll reports which of the requested events are currently ready.
	Poll(events vfsutils.PollEvents) (vfsutils.PollEvents, error)
	// Ioctl issues a device-specific control command.
	Ioctl(cmd uint32, arg uint64) (uint64, error)
	// Mmap reports whether [offset, offset+size) of this file can be
	// mapped; the VFS core does not itself manage pages (spec §6).
	Mmap(offset int64, size int64) error

	// Readlink copies up to len(buf) bytes of the stored target into buf.
	// Symlink-only.
	Readlink(buf []byte) (int, error)
}

// BaseInode supplies ENotImplemented defaults for every optional Inode
// method, mirroring fuseutil.NotImplementedFileSystem. Concrete inode kinds
// embed it and override only the operations they support.
type BaseInode struct{}

func (BaseInode) ListXattr() ([]string, error) { return nil, errNotImplemented }
func (BaseInode) GetXattr(name string) ([]byte, error) {
	return nil, errNotImplemented
}
func (BaseInode) SetXattr(name string, value []byte, flags vfsutils.XattrFlags) error {
	return errNotImplemented
}
func (BaseInode) RemoveXattr(name string) error { return errNotImplemented }

func (BaseInode) Create(name string, ty vfsutils.NodeType, perm vfsutils.Permission, rdev *uint32) (Inode, error) {
	return nil, errNotImplemented
}
func (BaseInode) Mkdir(name string, perm vfsutils.Permission) (Inode, error) {
	return nil, errNotImplemented
}
func (BaseInode) Lookup(name string) (Inode, error)  { return nil, errNotImplemented }
func (BaseInode) Unlink(name string) error           { return errNotImplemented }
func (BaseInode) Rmdir(name string) error            { return errNotImplemented }
func (BaseInode) Link(name string, src Inode) (Inode, error) {
	return nil, errNotImplemented
}
func (BaseInode) Symlink(name string, target string) (Inode, error) {
	return nil, errNotImplemented
}
func (BaseInode) RenameTo(oldName string, newParent Inode, newName string, flags vfsutils.RenameFlags) error {
	return errNotImplemented
}
func (BaseInode) Readdir(k int) (vfsutils.DirEntry, bool, error) {
	return vfsutils.DirEntry{}, false, errNotImplemented
}

func (BaseInode) ReadAt(buf []byte, offset int64) (int, error)  { return 0, errNotImplemented }
func (BaseInode) WriteAt(buf []byte, offset int64) (int, error) { return 0, errNotImplemented }
func (BaseInode) Truncate(size uint64) error                    { return errNotImplemented }
func (BaseInode) Flush() error                                  { return nil }
func (BaseInode) Fsync() error                                  { return nil }
func (BaseInode) Poll(events vfsutils.PollEvents) (vfsutils.PollEvents, error) {
	return 0, errNotImplemented
}
func (BaseInode) Ioctl(cmd uint32, arg uint64) (uint64, error) { return 0, errNotImplemented }
func (BaseInode) Mmap(offset int64, size int64) error          { return errNotImplemented }

func (BaseInode) Readlink(buf []byte) (int, error) { return 0, errNotImplemented }

var _ Inode = (*fullInodeCheck)(nil)

// fullInodeCheck exists only so the compiler verifies BaseInode plus the
// six required overrides (GetSuperBlock/GetAttr/SetAttr/NodePerm/
// InodeType/UpdateTime) satisfy Inode; it is never constructed.
type fullInodeCheck struct{ BaseInode }

func (*fullInodeCheck) GetSuperBlock() (Superblock, error)           { return nil, errNotImplemented }
func (*fullInodeCheck) GetAttr() (vfsutils.FileStat, error)          { return vfsutils.FileStat{}, errNotImplemented }
func (*fullInodeCheck) SetAttr(attr InodeAttr) error                 { return errNotImplemented }
func (*fullInodeCheck) NodePerm() vfsutils.Permission                { return 0 }
func (*fullInodeCheck) InodeType() vfsutils.NodeType                 { return vfsutils.NodeUnknown }
func (*fullInodeCheck) UpdateTime(which TimeField, now vfsutils.TimeSpec) error {
	return errNotImplemented
}
