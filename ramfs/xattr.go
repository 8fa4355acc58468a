package ramfs

import (
	"sort"
	"sync"

	"github.com/os-module/rvfs/vfsutils"
)

// xattrStore is the extended-attribute map every ramfs inode kind carries
// (spec §14 item 2: the source's ext_attr lives on the shared inode base,
// not just on files, so directories and symlinks support xattrs too).
type xattrStore struct {
	mu   sync.RWMutex
	vals map[string][]byte
}

func (x *xattrStore) list() ([]string, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	names := make([]string, 0, len(x.vals))
	for k := range x.vals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names, nil
}

func (x *xattrStore) get(name string) ([]byte, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	v, ok := x.vals[name]
	if !ok {
		return nil, errNoEntry
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (x *xattrStore) set(name string, value []byte, flags vfsutils.XattrFlags) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.vals == nil {
		x.vals = make(map[string][]byte)
	}
	_, exists := x.vals[name]
	if flags&vfsutils.XattrCreate != 0 && exists {
		return errFileExists
	}
	if flags&vfsutils.XattrReplace != 0 && !exists {
		return errNoEntry
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	x.vals[name] = cp
	return nil
}

func (x *xattrStore) remove(name string) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.vals[name]; !ok {
		return errNoEntry
	}
	delete(x.vals, name)
	return nil
}
