package vfscore

import "github.com/os-module/rvfs/vfsutils"

// Superblock is the per-mount instance handle (spec §3). As long as any
// dentry or inode of the mount is reachable, the superblock stays alive —
// in this Go implementation that invariant is simply the ordinary
// reachability guarantee the garbage collector already provides; see
// DESIGN.md for why no manual refcounting is needed here.
type Superblock interface {
	// SyncFS flushes dirty state; wait indicates whether to block until
	// the flush completes.
	SyncFS(wait bool) error
	// StatFS reports mount-wide statistics.
	StatFS() (vfsutils.FsStat, error)
	// RootInode returns this mount's root inode.
	RootInode() (Inode, error)
	// SuperType reports this mount's keying policy.
	SuperType() SuperType
	// FsType returns the FsType that produced this superblock.
	FsType() FsType
}
