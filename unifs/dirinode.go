package unifs

import (
	"github.com/jacobsa/syncutil"

	"github.com/os-module/rvfs/vfsutils"
)

// slot is one entry in a Children list. An unused (tombstoned) slot has
// Type == vfsutils.NodeUnknown and is skipped by Readdir and reused by Add.
type slot struct {
	Name string
	Ino  uint64
	Type vfsutils.NodeType
}

// Children is the ordered, gap-tombstoned child list shared by every
// unifs-derived directory inode (spec §4.5; grounded on the teacher's
// samples/memfs inode.entries pattern, since the source's ramfs directory
// never finished its own unlink/rmdir). A removed slot is marked
// NodeUnknown and reused by the next Add rather than compacted, so
// Readdir(k) returns a stable k-th-live-entry view even while concurrent
// Add/Remove calls are in flight.
//
// INVARIANT: contains no duplicate names among live (non-tombstoned)
// entries.
type Children struct {
	mu      syncutil.InvariantMutex
	entries []slot // GUARDED_BY(mu)
}

// NewChildren builds an empty child list.
func NewChildren() *Children {
	c := &Children{}
	c.mu = syncutil.NewInvariantMutex(c.checkInvariants)
	return c
}

func (c *Children) checkInvariants() {
	seen := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		if e.Type == vfsutils.NodeUnknown {
			continue
		}
		if seen[e.Name] {
			panic("unifs: duplicate live child name " + e.Name)
		}
		seen[e.Name] = true
	}
}

// Find looks up name among the live entries.
func (c *Children) Find(name string) (ino uint64, ty vfsutils.NodeType, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, e := range c.entries {
		if e.Type != vfsutils.NodeUnknown && e.Name == name {
			return e.Ino, e.Type, true
		}
	}
	return 0, 0, false
}

// Add inserts a new live entry, reusing a tombstoned slot if one exists.
// Returns EFileExists if name is already live.
func (c *Children) Add(name string, ino uint64, ty vfsutils.NodeType) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.Type != vfsutils.NodeUnknown && e.Name == name {
			return errFileExists
		}
	}

	e := slot{Name: name, Ino: ino, Type: ty}
	for i := range c.entries {
		if c.entries[i].Type == vfsutils.NodeUnknown {
			c.entries[i] = e
			return nil
		}
	}
	c.entries = append(c.entries, e)
	return nil
}

// Remove tombstones the live entry named name, returning its inode number.
func (c *Children) Remove(name string) (ino uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if e.Type != vfsutils.NodeUnknown && e.Name == name {
			c.entries[i] = slot{Type: vfsutils.NodeUnknown}
			return e.Ino, true
		}
	}
	return 0, false
}

// Rename retargets the live entry named name, e.g. when a rename changes
// which inode number an edge points at (RenameExchange) without touching
// the edge's position.
func (c *Children) Rename(name string, newName string, newIno uint64, newTy vfsutils.NodeType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if e.Type != vfsutils.NodeUnknown && e.Name == name {
			c.entries[i] = slot{Name: newName, Ino: newIno, Type: newTy}
			return
		}
	}
}

// Len reports the number of live entries.
func (c *Children) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, e := range c.entries {
		if e.Type != vfsutils.NodeUnknown {
			n++
		}
	}
	return n
}

// Empty reports whether this directory has any live children (used by
// Rmdir, spec §4.3: "rmdir fails with ENotEmpty unless the target
// directory has no live children").
func (c *Children) Empty() bool {
	return c.Len() == 0
}

// Readdir returns the k-th live entry in storage order, mirroring
// vfscore.Inode.Readdir's (entry, ok, err) contract directly.
func (c *Children) Readdir(k int) (vfsutils.DirEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := 0
	for _, e := range c.entries {
		if e.Type == vfsutils.NodeUnknown {
			continue
		}
		if i == k {
			return vfsutils.DirEntry{Ino: e.Ino, Type: e.Type, Name: e.Name}, true
		}
		i++
	}
	return vfsutils.DirEntry{}, false
}

// Names returns every live child name in storage order, used by the path
// engine's tree-printing and iteration helpers.
func (c *Children) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Type != vfsutils.NodeUnknown {
			names = append(names, e.Name)
		}
	}
	return names
}
