package ramfs

import (
	"sync"

	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// fileInode is a growable, all-in-memory byte buffer (spec §4.6; grounded
// on the source's RamFsFileInode).
type fileInode struct {
	vfscore.BaseInode
	unifs.Basic
	xattrStore

	mu   sync.RWMutex
	data []byte // GUARDED_BY(mu)
}

var _ vfscore.Inode = (*fileInode)(nil)

func newFileInode(sb *unifs.Superblock, number uint64, perm vfsutils.Permission) *fileInode {
	return &fileInode{Basic: unifs.NewBasic(sb, number, perm)}
}

func (f *fileInode) InodeType() vfsutils.NodeType { return vfsutils.NodeFile }

func (f *fileInode) GetAttr() (vfsutils.FileStat, error) {
	stat := f.BaseStat()
	f.mu.RLock()
	stat.Size = uint64(len(f.data))
	f.mu.RUnlock()
	stat.Mode |= uint32(vfsutils.NodeFile) << 12
	return stat, nil
}

func (f *fileInode) ReadAt(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, errInvalidArgument
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if offset >= int64(len(f.data)) {
		return 0, nil
	}
	n := copy(buf, f.data[offset:])
	return n, nil
}

func (f *fileInode) WriteAt(buf []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, errInvalidArgument
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	end := offset + int64(len(buf))
	if end > int64(len(f.data)) {
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}
	copy(f.data[offset:end], buf)
	f.touchMtime()
	return len(buf), nil
}

func (f *fileInode) Truncate(size uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if int64(size) <= int64(len(f.data)) {
		f.data = f.data[:size]
	} else {
		grown := make([]byte, size)
		copy(grown, f.data)
		f.data = grown
	}
	f.touchMtime()
	return nil
}

func (f *fileInode) Flush() error { return nil }
func (f *fileInode) Fsync() error { return nil }

func (f *fileInode) Poll(events vfsutils.PollEvents) (vfsutils.PollEvents, error) {
	return events & (vfsutils.PollIn | vfsutils.PollOut), nil
}

func (f *fileInode) ListXattr() ([]string, error) { return f.xattrStore.list() }
func (f *fileInode) GetXattr(name string) ([]byte, error) {
	return f.xattrStore.get(name)
}
func (f *fileInode) SetXattr(name string, value []byte, flags vfsutils.XattrFlags) error {
	return f.xattrStore.set(name, value, flags)
}
func (f *fileInode) RemoveXattr(name string) error { return f.xattrStore.remove(name) }
