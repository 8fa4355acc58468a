package unifs

import (
	"github.com/jacobsa/syncutil"

	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// Dentry is the generic dentry shell described in spec §3/§4.4/§4.5: a
// name, a strong inode reference, an optional mount-point decoration, and
// (for directories) a child cache. Every synthetic filesystem in this
// module uses this type directly rather than defining its own.
type Dentry struct {
	mu syncutil.InvariantMutex

	parent   vfscore.Dentry           // GUARDED_BY(mu)
	name     string                   // GUARDED_BY(mu)
	inode    vfscore.Inode            // GUARDED_BY(mu)
	mnt      *vfscore.MountPoint      // GUARDED_BY(mu)
	children map[string]vfscore.Dentry // GUARDED_BY(mu); nil for non-directories
}

var _ vfscore.Dentry = (*Dentry)(nil)

// NewRoot builds the root dentry of a fresh superblock: empty parent, name
// "/" (spec §4.2: "the returned root dentry must have empty parent and
// name '/'").
func NewRoot(inode vfscore.Inode) *Dentry {
	d := &Dentry{
		name:  "/",
		inode: inode,
	}
	if inode.InodeType().IsDir() {
		d.children = make(map[string]vfscore.Dentry)
	}
	d.mu = syncutil.NewInvariantMutex(d.checkInvariants)
	return d
}

func newChild(parent vfscore.Dentry, name string, inode vfscore.Inode) *Dentry {
	d := &Dentry{
		parent: parent,
		name:   name,
		inode:  inode,
	}
	if inode.InodeType().IsDir() {
		d.children = make(map[string]vfscore.Dentry)
	}
	d.mu = syncutil.NewInvariantMutex(d.checkInvariants)
	return d
}

func (d *Dentry) checkInvariants() {
	// INVARIANT: a non-directory dentry has no children map.
	if d.inode != nil && !d.inode.InodeType().IsDir() && d.children != nil {
		panic("unifs: non-directory dentry has a children map")
	}
}

// Name implements vfscore.Dentry.
func (d *Dentry) Name() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.name
}

// Inode implements vfscore.Dentry.
func (d *Dentry) Inode() (vfscore.Inode, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.inode, nil
}

// Parent implements vfscore.Dentry.
func (d *Dentry) Parent() vfscore.Dentry {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.parent
}

// SetParent implements vfscore.Dentry.
func (d *Dentry) SetParent(parent vfscore.Dentry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.parent = parent
}

// Rename updates this dentry's cached name in place, used by the path
// engine when a rename moves an entry without changing its identity.
func (d *Dentry) Rename(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.name = name
}

// MountPoint implements vfscore.Dentry.
func (d *Dentry) MountPoint() *vfscore.MountPoint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.mnt
}

// IsMountPoint implements vfscore.Dentry.
func (d *Dentry) IsMountPoint() bool {
	return d.MountPoint() != nil
}

// SetMountPoint implements vfscore.Dentry. Idempotent: replaces any
// existing mount record (spec §4.4).
func (d *Dentry) SetMountPoint(subRoot vfscore.Dentry, flags vfsutils.MountFlags) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mnt = &vfscore.MountPoint{Root: subRoot, Covering: d, Flags: flags}
	return nil
}

// ClearMountPoint implements vfscore.Dentry.
func (d *Dentry) ClearMountPoint() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.mnt = nil
}

// Find implements vfscore.Dentry: a pure cache probe.
func (d *Dentry) Find(name string) (vfscore.Dentry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.children == nil {
		return nil, false
	}
	child, ok := d.children[name]
	return child, ok
}

// Insert implements vfscore.Dentry.
func (d *Dentry) Insert(name string, child vfscore.Inode) (vfscore.Dentry, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.children == nil {
		return nil, errNotDir
	}
	if _, ok := d.children[name]; ok {
		return nil, errFileExists
	}
	cd := newChild(d, name, child)
	d.children[name] = cd
	return cd, nil
}

// Remove implements vfscore.Dentry.
func (d *Dentry) Remove(name string) (vfscore.Dentry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.children == nil {
		return nil, false
	}
	child, ok := d.children[name]
	if ok {
		delete(d.children, name)
	}
	return child, ok
}

// reinsert is used by rename to place an existing dentry object under a
// new name/parent without losing its identity (its mount decoration, its
// own children, etc.).
func (d *Dentry) reinsert(name string, child *Dentry) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.children == nil {
		return errNotDir
	}
	if _, ok := d.children[name]; ok {
		return errFileExists
	}
	d.children[name] = child
	return nil
}

// Reinsert exposes reinsert through the vfscore.Dentry interface boundary
// for the path engine's rename implementation. parent and child must both
// be *Dentry values; otherwise it returns EInvalidArgument.
func Reinsert(parent vfscore.Dentry, name string, child vfscore.Dentry) error {
	p, ok := parent.(*Dentry)
	if !ok {
		return errInvalidArgument
	}
	c, ok := child.(*Dentry)
	if !ok {
		return errInvalidArgument
	}
	return p.reinsert(name, c)
}
