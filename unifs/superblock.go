// Package unifs is the shared in-memory inode/dentry skeleton reused by
// every synthetic filesystem in this module (spec §4.5, component F):
// inode-number allocation, an inode cache keyed by number so hard links
// resolve to the same object, a generic directory-inode child list, and a
// generic dentry tree.
package unifs

import (
	"sync/atomic"

	"github.com/jacobsa/syncutil"
	"github.com/jacobsa/timeutil"

	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// Superblock is the shared superblock state every synthetic filesystem
// builds on: an atomic inode-number counter, an atomic inode count, and a
// cache mapping inode number to the live Inode (spec §4.5). Concrete
// filesystems embed *Superblock and supply their own SuperType/FsType.
type Superblock struct {
	fsType    vfscore.FsType
	superType vfscore.SuperType
	clock     timeutil.Clock

	inodeIndex atomic.Uint64
	inodeCount atomic.Int64

	mu    syncutil.InvariantMutex
	cache map[uint64]vfscore.Inode // GUARDED_BY(mu)
	root  vfscore.Dentry           // GUARDED_BY(mu)
}

// NewSuperblock creates a superblock for fsType using clock as the time
// provider for every inode minted beneath it. The seed inode number is 0,
// reserved for the root (spec §4.5).
func NewSuperblock(fsType vfscore.FsType, superType vfscore.SuperType, clock timeutil.Clock) *Superblock {
	sb := &Superblock{
		fsType:    fsType,
		superType: superType,
		clock:     clock,
		cache:     make(map[uint64]vfscore.Inode),
	}
	sb.mu = syncutil.NewInvariantMutex(sb.checkInvariants)
	return sb
}

func (sb *Superblock) checkInvariants() {
	if int64(len(sb.cache)) != sb.inodeCount.Load() {
		panic("unifs.Superblock: inodeCount out of sync with cache size")
	}
}

// Clock returns the time provider for this mount.
func (sb *Superblock) Clock() timeutil.Clock { return sb.clock }

// NextInodeNumber does a fetch-and-increment of the inode-number counter.
func (sb *Superblock) NextInodeNumber() uint64 {
	return sb.inodeIndex.Add(1) - 1
}

// InsertInode registers inode under number in the superblock's cache.
func (sb *Superblock) InsertInode(number uint64, inode vfscore.Inode) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cache[number] = inode
	sb.inodeCount.Add(1)
}

// RemoveInode evicts number from the cache, e.g. once its link count and
// open-reference count both reach zero.
func (sb *Superblock) RemoveInode(number uint64) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if _, ok := sb.cache[number]; ok {
		delete(sb.cache, number)
		sb.inodeCount.Add(-1)
	}
}

// GetInode looks up an inode by number.
func (sb *Superblock) GetInode(number uint64) (vfscore.Inode, bool) {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	in, ok := sb.cache[number]
	return in, ok
}

// InodeCount returns the number of live inodes cached by this superblock.
func (sb *Superblock) InodeCount() int64 { return sb.inodeCount.Load() }

// SetRoot installs the mount's root dentry. Call once, from the owning
// FsType's Mount implementation.
func (sb *Superblock) SetRoot(root vfscore.Dentry) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.root = root
}

// SyncFS implements vfscore.Superblock. Synthetic filesystems have nothing
// to flush.
func (sb *Superblock) SyncFS(wait bool) error { return nil }

// StatFS implements vfscore.Superblock with the zeroed-but-populated
// statistics every unifs-derived mount reports (spec §14 item 6).
func (sb *Superblock) StatFS() (vfsutils.FsStat, error) {
	return vfsutils.FsStat{
		BlockSize: 4096,
		NameLen:   255,
	}, nil
}

// RootInode implements vfscore.Superblock.
func (sb *Superblock) RootInode() (vfscore.Inode, error) {
	sb.mu.RLock()
	root := sb.root
	sb.mu.RUnlock()
	if root == nil {
		return nil, errInvalidArgument
	}
	return root.Inode()
}

// RootDentry returns the mount's root dentry directly, for FsType
// implementations (like dynfs) that need to hand back the same dentry on
// a repeated Mount call rather than rebuilding the tree.
func (sb *Superblock) RootDentry() vfscore.Dentry {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.root
}

// SuperType implements vfscore.Superblock.
func (sb *Superblock) SuperType() vfscore.SuperType { return sb.superType }

// FsType implements vfscore.Superblock.
func (sb *Superblock) FsType() vfscore.FsType { return sb.fsType }
