package dynfs

import (
	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// fileInode wraps a caller-supplied inode so it can be exposed under a
// name in the synthetic tree (spec §4.8; grounded on the source's
// DynFsFileInode). Every read/write/poll/ioctl/flush/fsync delegates to
// real; only the wrapper's own identity (inode number, link count,
// timestamps) is synthetic.
type fileInode struct {
	vfscore.BaseInode
	unifs.Basic

	real vfscore.Inode
}

var _ vfscore.Inode = (*fileInode)(nil)

func newFileInode(sb *unifs.Superblock, number uint64, perm vfsutils.Permission, real vfscore.Inode) *fileInode {
	return &fileInode{Basic: unifs.NewBasic(sb, number, perm), real: real}
}

func (f *fileInode) InodeType() vfsutils.NodeType { return vfsutils.NodeFile }

func (f *fileInode) GetAttr() (vfsutils.FileStat, error) {
	stat := f.BaseStat()
	real, err := f.real.GetAttr()
	if err != nil {
		return vfsutils.FileStat{}, err
	}
	stat.Size = real.Size
	stat.Mode |= uint32(vfsutils.NodeFile) << 12
	return stat, nil
}

// SetAttr is a no-op, matching the source (the wrapper's own attrs are
// synthetic bookkeeping; callers that want to resize the real backing
// object should go through Truncate/WriteAt on it directly).
func (f *fileInode) SetAttr(attr vfscore.InodeAttr) error { return nil }

func (f *fileInode) ReadAt(buf []byte, offset int64) (int, error) {
	return f.real.ReadAt(buf, offset)
}

func (f *fileInode) WriteAt(buf []byte, offset int64) (int, error) {
	return f.real.WriteAt(buf, offset)
}

func (f *fileInode) Poll(events vfsutils.PollEvents) (vfsutils.PollEvents, error) {
	return f.real.Poll(events)
}

func (f *fileInode) Ioctl(cmd uint32, arg uint64) (uint64, error) {
	return f.real.Ioctl(cmd, arg)
}

func (f *fileInode) Flush() error { return f.real.Flush() }
func (f *fileInode) Fsync() error { return f.real.Fsync() }
