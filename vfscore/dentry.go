package vfscore

import "github.com/os-module/rvfs/vfsutils"

// MountPoint records that a dentry has a sub-filesystem mounted on it
// (spec §3). Root is a strong reference to the sub-filesystem's root
// dentry; Covering points back at the dentry this record is attached to.
//
// The original Rust source keeps Covering as a Weak<dyn VfsDentry> purely
// to avoid an Arc reference cycle that would never be collected. Go's
// tracing garbage collector reclaims reference cycles on its own, so
// Covering is an ordinary pointer here; see DESIGN.md for the full
// rationale.
type MountPoint struct {
	Root     Dentry
	Covering Dentry
	Flags    vfsutils.MountFlags
}

// Dentry is a named, cached edge from a parent directory to a child inode
// (spec §3/§4.4). A non-directory dentry has no child cache: Find and
// Remove on one report ok == false, and Insert fails with ENotDir.
type Dentry interface {
	// Name is this dentry's local name ("/" for a mount root).
	Name() string
	// Inode returns the inode this dentry names.
	Inode() (Inode, error)
	// Parent returns the parent dentry, or nil for a superblock root.
	Parent() Dentry
	// SetParent reparents this dentry; used when mounting and renaming.
	SetParent(parent Dentry)

	// MountPoint returns this dentry's mount decoration, if any.
	MountPoint() *MountPoint
	// IsMountPoint reports whether MountPoint() would return non-nil.
	IsMountPoint() bool
	// SetMountPoint decorates this dentry with a mount record, replacing
	// any existing one (idempotent, spec §4.4).
	SetMountPoint(subRoot Dentry, flags vfsutils.MountFlags) error
	// ClearMountPoint drops the mount decoration.
	ClearMountPoint()

	// Find is a pure cache probe: it may return ok == false even when
	// Inode().Lookup(name) would succeed.
	Find(name string) (child Dentry, ok bool)
	// Insert wraps child in a new cached dentry named name and attaches
	// it, failing with EFileExists if name is already cached.
	Insert(name string, child Inode) (Dentry, error)
	// Remove detaches and returns the cached child named name.
	Remove(name string) (child Dentry, ok bool)
}
