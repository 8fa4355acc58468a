package ramfs

import (
	"sync"

	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// symlinkInode stores its target as an immutable-after-creation string
// (spec §4.6; grounded on the source's RamFsSymLinkInode). Permission is
// fixed at 0777, matching the source's VfsNodePerm::from_bits_truncate(0o777).
type symlinkInode struct {
	vfscore.BaseInode
	unifs.Basic
	xattrStore

	mu     sync.RWMutex
	target string
}

var _ vfscore.Inode = (*symlinkInode)(nil)

func newSymlinkInode(sb *unifs.Superblock, number uint64, target string) *symlinkInode {
	return &symlinkInode{
		Basic:  unifs.NewBasic(sb, number, vfsutils.PermissionFromMode(0o777)),
		target: target,
	}
}

func (s *symlinkInode) InodeType() vfsutils.NodeType { return vfsutils.NodeSymlink }

func (s *symlinkInode) GetAttr() (vfsutils.FileStat, error) {
	stat := s.BaseStat()
	s.mu.RLock()
	stat.Size = uint64(len(s.target))
	s.mu.RUnlock()
	stat.Mode |= uint32(vfsutils.NodeSymlink) << 12
	return stat, nil
}

func (s *symlinkInode) Readlink(buf []byte) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := copy(buf, s.target)
	return n, nil
}

func (s *symlinkInode) ListXattr() ([]string, error) { return s.xattrStore.list() }
func (s *symlinkInode) GetXattr(name string) ([]byte, error) {
	return s.xattrStore.get(name)
}
func (s *symlinkInode) SetXattr(name string, value []byte, flags vfsutils.XattrFlags) error {
	return s.xattrStore.set(name, value, flags)
}
func (s *symlinkInode) RemoveXattr(name string) error { return s.xattrStore.remove(name) }
