package unifs

import (
	"github.com/jacobsa/syncutil"

	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// Attr is the mutable metadata every unifs-derived inode carries: link
// count and the three timestamps plus permission bits (spec §4.5
// UniFsInodeAttr).
type Attr struct {
	LinkCount uint32
	Perm      vfsutils.Permission
	Atime     vfsutils.TimeSpec
	Mtime     vfsutils.TimeSpec
	Ctime     vfsutils.TimeSpec
}

// Basic is the common state every concrete unifs-derived inode embeds: a
// back-reference to its owning superblock, its inode number, and a
// lock-guarded Attr (spec §4.5 UniFsInodeSame).
type Basic struct {
	Sb          *Superblock
	InodeNumber uint64

	mu   syncutil.InvariantMutex
	attr Attr
}

// NewBasic builds the common inode state, stamping atime/mtime/ctime from
// sb's clock and setting link count to 1 (spec §4.3: "the new inode's link
// count is 1 and its timestamps equal the superblock's current time").
func NewBasic(sb *Superblock, number uint64, perm vfsutils.Permission) Basic {
	now := toTimeSpec(sb.Clock())
	b := Basic{Sb: sb, InodeNumber: number}
	b.attr = Attr{LinkCount: 1, Perm: perm, Atime: now, Mtime: now, Ctime: now}
	b.mu = syncutil.NewInvariantMutex(b.checkInvariants)
	return b
}

func (b *Basic) checkInvariants() {
	const validBits = vfsutils.Permission(0o7777)
	if b.attr.Perm&^validBits != 0 {
		panic("unifs.Basic: permission bits outside the valid rwx/setuid/setgid/sticky range")
	}
}

// GetSuperBlock returns the owning superblock.
func (b *Basic) GetSuperBlock() (vfscore.Superblock, error) {
	return b.Sb, nil
}

// NodePerm returns the current permission bits.
func (b *Basic) NodePerm() vfsutils.Permission {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.attr.Perm
}

// LinkCount returns the current hard-link count.
func (b *Basic) LinkCount() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.attr.LinkCount
}

// IncLinkCount adds one to the link count, as Link() must do (spec §4.3).
func (b *Basic) IncLinkCount() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attr.LinkCount++
}

// DecLinkCount subtracts one from the link count, as Unlink()/Rmdir() must
// do, and reports the resulting count.
func (b *Basic) DecLinkCount() uint32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.attr.LinkCount > 0 {
		b.attr.LinkCount--
	}
	return b.attr.LinkCount
}

// UpdateTime implements the shared half of vfscore.Inode.UpdateTime.
func (b *Basic) UpdateTime(which vfscore.TimeField, now vfsutils.TimeSpec) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch which {
	case vfscore.TimeAccess:
		b.attr.Atime = now
	case vfscore.TimeModify:
		b.attr.Mtime = now
	case vfscore.TimeChange, vfscore.TimeCreate:
		b.attr.Ctime = now
	}
	return nil
}

// SetAttr applies the timestamp and permission fields of attr, per spec
// §4.3 set_attr. Size, Uid and Gid are ignored; no inode kind in this
// module overrides SetAttr to apply them, and a file is resized only
// through its Truncate method.
func (b *Basic) SetAttr(attr vfscore.InodeAttr) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if attr.Mode != nil {
		b.attr.Perm = *attr.Mode
	}
	if attr.Atime != nil {
		b.attr.Atime = *attr.Atime
	}
	if attr.Mtime != nil {
		b.attr.Mtime = *attr.Mtime
	}
	if attr.Ctime != nil {
		b.attr.Ctime = *attr.Ctime
	}
	return nil
}

// BaseStat fills in the fields of a FileStat common to every unifs-derived
// inode; callers then overwrite Size/Rdev/Mode bits specific to their kind.
func (b *Basic) BaseStat() vfsutils.FileStat {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return vfsutils.FileStat{
		Ino:     b.InodeNumber,
		Nlink:   b.attr.LinkCount,
		Mode:    uint32(b.attr.Perm),
		BlkSize: 4096,
		Atime:   b.attr.Atime,
		Mtime:   b.attr.Mtime,
		Ctime:   b.attr.Ctime,
	}
}

func (b *Basic) touchMtime() {
	now := toTimeSpec(b.Sb.Clock())
	b.mu.Lock()
	b.attr.Mtime = now
	b.mu.Unlock()
}
