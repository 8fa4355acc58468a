// Package vfspath implements the path-resolution and mount-traversal
// engine (spec §4.9, components J and K): joining path segments, walking
// the dentry cache down to the backing inode store, crossing mount
// points transparently, and the higher-level file operations (open,
// create, link, symlink, unlink, rename, mount, umount, truncate) built
// on top of that resolution.
//
// Resolution is grounded directly on original_source/vfscore/src/path.rs
// (VfsPath): a path carries its starting dentry (a mount's root, or any
// dentry reachable from one) and a '/'-joined string of components
// relative to it, resolved lazily one component at a time against the
// dentry cache, falling back to the backing filesystem's Lookup and
// populating the cache as it goes.
package vfspath

import (
	"strings"

	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// maxSymlinkDepth bounds symlink-expansion recursion in Open, the way
// every POSIX resolver bounds ELOOP (spec §4.9).
const maxSymlinkDepth = 40

// maxNameLen matches the NameLen every unifs-derived mount reports from
// StatFS; a component longer than this is rejected before it ever reaches
// a filesystem's Lookup/Create.
const maxNameLen = 255

// Path is an unresolved reference into a mounted tree: a starting dentry
// plus a slice-joined relative path string (spec §4.9 VfsPath).
type Path struct {
	fs   vfscore.Dentry
	path string
}

// New builds the root Path of the tree rooted at root.
func New(root vfscore.Dentry) *Path {
	return &Path{fs: root, path: ""}
}

// String returns the path's component string (without the starting
// dentry's own name), e.g. "a/b/c".
func (p *Path) String() string { return strings.TrimPrefix(p.path, "/") }

// Join appends a path segment, handling "." and ".." components and an
// absolute (leading '/') segment by re-rooting at Root() first (spec
// §4.9 join).
func (p *Path) Join(seg string) (*Path, error) {
	if seg == "" {
		return &Path{fs: p.fs, path: p.path}, nil
	}
	if len(seg) > 1 && strings.HasSuffix(seg, "/") {
		return nil, errInvalidArgument
	}

	base := p
	if strings.HasPrefix(seg, "/") {
		base = p.Root()
	}

	var components []string
	for _, c := range strings.Split(seg, "/") {
		switch c {
		case "", ".":
			continue
		case "..":
			if len(components) > 0 {
				components = components[:len(components)-1]
			} else {
				base = base.Parent()
			}
		default:
			if len(c) > maxNameLen {
				return nil, errNameTooLong
			}
			components = append(components, c)
		}
	}

	path := base.path
	for _, c := range components {
		path += "/" + c
	}
	return &Path{fs: base.fs, path: path}, nil
}

// Root returns the root Path of this path's tree.
func (p *Path) Root() *Path { return &Path{fs: p.fs, path: ""} }

// IsRoot reports whether this path names its tree's root.
func (p *Path) IsRoot() bool { return p.path == "" }

// Parent returns the Path one component up.
func (p *Path) Parent() *Path {
	idx := strings.LastIndex(p.path, "/")
	if idx < 0 {
		return p.Root()
	}
	return &Path{fs: p.fs, path: p.path[:idx]}
}

// Filename returns the last path component, or "" at the root (spec §14
// item 3).
func (p *Path) Filename() string {
	idx := strings.LastIndex(p.path, "/")
	return p.path[idx+1:]
}

// Extension returns the substring of Filename after its last '.', or ""
// if the filename has no extension (a leading dot, as in ".bashrc", does
// not count as one — spec §14 item 3).
func (p *Path) Extension() (string, bool) {
	name := p.Filename()
	idx := strings.LastIndex(name, ".")
	if idx <= 0 {
		return "", false
	}
	return name[idx+1:], true
}

// realDentry descends through mount-point decorations until it reaches a
// dentry that is not itself covered by a mount (spec §4.4/§4.9 real_dentry).
func realDentry(d vfscore.Dentry) vfscore.Dentry {
	for d.IsMountPoint() {
		d = d.MountPoint().Root
	}
	return d
}

// splitPath peels the first '/'-delimited component off path, mirroring
// the source's split_path.
func splitPath(path string) (head string, rest string, hasRest bool) {
	trimmed := strings.TrimPrefix(path, "/")
	idx := strings.IndexByte(trimmed, '/')
	if idx < 0 {
		return trimmed, "", false
	}
	return trimmed[:idx], trimmed[idx+1:], true
}

// Exists resolves this path against the dentry cache and backing store,
// crossing mount points as it goes, and returns nil (no error) if any
// component along the way is missing (spec §4.9 exists).
func (p *Path) Exists() (vfscore.Dentry, error) {
	parent := p.fs
	path := p.path
	for {
		name, rest, hasRest := splitPath(path)
		parentInode, err := parent.Inode()
		if err != nil {
			return nil, err
		}
		if !parentInode.InodeType().IsDir() {
			return nil, errNotDir
		}
		if name == "" {
			break
		}

		dentry := realDentry(parent)
		sub, ok := dentry.Find(name)
		if !ok {
			dentryInode, err := dentry.Inode()
			if err != nil {
				return nil, err
			}
			subInode, err := dentryInode.Lookup(name)
			if err == errNoEntry {
				return nil, nil
			}
			if err != nil {
				return nil, err
			}
			sub, err = dentry.Insert(name, subInode)
			if err != nil {
				return nil, err
			}
		}
		parent = sub

		if !hasRest {
			break
		}
		path = rest
	}
	return realDentry(parent), nil
}

// Open resolves path, following up to maxSymlinkDepth symlinks unless
// flags has OpenNoFollow, and applies OpenCreate/OpenExclusive/
// OpenTruncate (spec §4.9 open).
func (p *Path) Open(flags vfsutils.OpenFlags, perm vfsutils.Permission) (vfscore.Dentry, error) {
	var resolved vfscore.Dentry
	var err error

	if flags&vfsutils.OpenNoFollow != 0 {
		resolved, err = p.Exists()
		if err != nil {
			return nil, err
		}
	} else {
		resolved, err = p.followSymlinks(0)
		if err != nil {
			return nil, err
		}
	}

	if resolved == nil {
		if flags&vfsutils.OpenCreate == 0 {
			return nil, errNoEntry
		}
		return p.CreateFile(perm)
	}

	if flags&vfsutils.OpenCreate != 0 && flags&vfsutils.OpenExclusive != 0 {
		return nil, errFileExists
	}

	if flags&vfsutils.OpenTruncate != 0 {
		inode, ierr := resolved.Inode()
		if ierr != nil {
			return nil, ierr
		}
		if err := inode.Truncate(0); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

func (p *Path) followSymlinks(depth int) (vfscore.Dentry, error) {
	if depth > maxSymlinkDepth {
		return nil, errInvalidArgument
	}
	resolved, err := p.Exists()
	if err != nil || resolved == nil {
		return resolved, err
	}
	inode, err := resolved.Inode()
	if err != nil {
		return nil, err
	}
	if !inode.InodeType().IsSymlink() {
		return resolved, nil
	}

	buf := make([]byte, 4096)
	n, err := inode.Readlink(buf)
	if err != nil {
		return nil, err
	}
	target := string(buf[:n])

	var next *Path
	if strings.HasPrefix(target, "/") {
		next, err = p.Root().Join(target)
	} else {
		next, err = p.Parent().Join(target)
	}
	if err != nil {
		return nil, err
	}
	return next.followSymlinks(depth + 1)
}

// getParent resolves this path's parent directory, failing with ENoEntry
// if it is missing and ENotDir if it exists but is not a directory (spec
// §4.9 get_parent).
func (p *Path) getParent() (vfscore.Dentry, error) {
	parent := p.Parent()
	resolved, err := parent.Exists()
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, errNoEntry
	}
	inode, err := resolved.Inode()
	if err != nil {
		return nil, err
	}
	if !inode.InodeType().IsDir() {
		return nil, errNotDir
	}
	return resolved, nil
}

// CreateFile creates a new regular file at this path (spec §4.9
// create_file).
func (p *Path) CreateFile(perm vfsutils.Permission) (vfscore.Dentry, error) {
	return p.create(vfsutils.NodeFile, perm)
}

// CreateDir creates a new directory at this path (spec §4.9 create_dir).
func (p *Path) CreateDir(perm vfsutils.Permission) (vfscore.Dentry, error) {
	return p.create(vfsutils.NodeDir, perm)
}

func (p *Path) create(ty vfsutils.NodeType, perm vfsutils.Permission) (vfscore.Dentry, error) {
	parent, err := p.getParent()
	if err != nil {
		return nil, err
	}
	dentry := realDentry(parent)
	name := p.Filename()
	if name == "" {
		return nil, errInvalidArgument
	}

	if _, ok := dentry.Find(name); ok {
		return nil, errFileExists
	}
	parentInode, err := dentry.Inode()
	if err != nil {
		return nil, err
	}
	if _, err := parentInode.Lookup(name); err == nil {
		// The original_source implementation discards this lookup result
		// and always falls through to create() even on a cache miss that
		// the backing store already has; that drops a real EEXIST. This
		// translation reports it instead.
		return nil, errFileExists
	}

	childInode, err := parentInode.Create(name, ty, perm, nil)
	if err != nil {
		return nil, err
	}
	return dentry.Insert(name, childInode)
}

// Link creates a new hard link at this path pointing at src, which must
// already exist and name a non-directory (spec §4.9 link).
func (p *Path) Link(src *Path) (vfscore.Dentry, error) {
	srcDentry, err := src.Exists()
	if err != nil {
		return nil, err
	}
	if srcDentry == nil {
		return nil, errNoEntry
	}
	srcInode, err := srcDentry.Inode()
	if err != nil {
		return nil, err
	}

	parent, err := p.getParent()
	if err != nil {
		return nil, err
	}
	dentry := realDentry(parent)
	name := p.Filename()
	if _, ok := dentry.Find(name); ok {
		return nil, errFileExists
	}
	parentInode, err := dentry.Inode()
	if err != nil {
		return nil, err
	}
	newInode, err := parentInode.Link(name, srcInode)
	if err != nil {
		return nil, err
	}
	return dentry.Insert(name, newInode)
}

// Symlink creates a new symlink at this path whose stored target is
// target (spec §4.9 symlink).
func (p *Path) Symlink(target string) (vfscore.Dentry, error) {
	parent, err := p.getParent()
	if err != nil {
		return nil, err
	}
	dentry := realDentry(parent)
	name := p.Filename()
	if _, ok := dentry.Find(name); ok {
		return nil, errFileExists
	}
	parentInode, err := dentry.Inode()
	if err != nil {
		return nil, err
	}
	newInode, err := parentInode.Symlink(name, target)
	if err != nil {
		return nil, err
	}
	return dentry.Insert(name, newInode)
}

// Unlink removes the non-directory entry at this path (spec §4.9
// unlink). Use Rmdir for directories.
func (p *Path) Unlink() error {
	parent, err := p.getParent()
	if err != nil {
		return err
	}
	dentry := realDentry(parent)
	name := p.Filename()
	parentInode, err := dentry.Inode()
	if err != nil {
		return err
	}
	if err := parentInode.Unlink(name); err != nil {
		return err
	}
	dentry.Remove(name)
	return nil
}

// Rmdir removes the empty directory at this path.
func (p *Path) Rmdir() error {
	parent, err := p.getParent()
	if err != nil {
		return err
	}
	dentry := realDentry(parent)
	name := p.Filename()
	parentInode, err := dentry.Inode()
	if err != nil {
		return err
	}
	if err := parentInode.Rmdir(name); err != nil {
		return err
	}
	dentry.Remove(name)
	return nil
}

// renamer is implemented by unifs.Dentry; Rename uses it to keep a moved
// dentry's cached name in sync with its new location.
type renamer interface {
	Rename(name string)
}

// Rename moves (or, with vfsutils.RenameExchange, swaps) the entry at
// this path onto dst, honoring RenameNoReplace/RenameExchange (spec §4.9
// rename, §8 scenario 5). Cross-superblock renames are rejected with
// EInvalidArgument (the original source has no cross-device errno; see
// DESIGN.md).
func (p *Path) Rename(dst *Path, flags vfsutils.RenameFlags) error {
	srcParentD, err := p.getParent()
	if err != nil {
		return err
	}
	dstParentD, err := dst.getParent()
	if err != nil {
		return err
	}
	srcDentry := realDentry(srcParentD)
	dstDentry := realDentry(dstParentD)

	srcName := p.Filename()
	dstName := dst.Filename()

	srcParentInode, err := srcDentry.Inode()
	if err != nil {
		return err
	}
	dstParentInode, err := dstDentry.Inode()
	if err != nil {
		return err
	}
	srcSb, err := srcParentInode.GetSuperBlock()
	if err != nil {
		return err
	}
	dstSb, err := dstParentInode.GetSuperBlock()
	if err != nil {
		return err
	}
	if srcSb != dstSb {
		return errInvalidArgument
	}

	if err := srcParentInode.RenameTo(srcName, dstParentInode, dstName, flags); err != nil {
		return err
	}

	srcChild, srcCached := srcDentry.Remove(srcName)
	dstChild, dstCached := dstDentry.Remove(dstName)

	if flags&vfsutils.RenameExchange != 0 {
		if srcCached {
			if r, ok := srcChild.(renamer); ok {
				r.Rename(dstName)
			}
			_ = unifs.Reinsert(dstDentry, dstName, srcChild)
		}
		if dstCached {
			if r, ok := dstChild.(renamer); ok {
				r.Rename(srcName)
			}
			_ = unifs.Reinsert(srcDentry, srcName, dstChild)
		}
		return nil
	}

	if srcCached {
		if r, ok := srcChild.(renamer); ok {
			r.Rename(dstName)
		}
		srcChild.SetParent(dstDentry)
		_ = unifs.Reinsert(dstDentry, dstName, srcChild)
	}
	return nil
}

// Truncate resizes the regular file at this path (spec §4.9 truncate).
func (p *Path) Truncate(size uint64) error {
	resolved, err := p.Exists()
	if err != nil {
		return err
	}
	if resolved == nil {
		return errNoEntry
	}
	inode, err := resolved.Inode()
	if err != nil {
		return err
	}
	if inode.InodeType().IsDir() {
		return errInvalidArgument
	}
	return inode.Truncate(size)
}

// Mount grafts fsType's root dentry onto this path, failing with EBusy
// if this path is already a mount point (spec §4.9 mount).
func (p *Path) Mount(fsType vfscore.FsType, dev vfscore.Inode, data []byte, flags vfsutils.MountFlags) error {
	resolved, err := p.Exists()
	if err != nil {
		return err
	}
	if resolved == nil {
		return errNoEntry
	}
	// Exists descends through mounts; the mount record sits on the
	// cached dentry that names this path in its parent.
	covering := p.fs
	if !p.IsRoot() {
		parent, err := p.getParent()
		if err != nil {
			return err
		}
		if d, ok := realDentry(parent).Find(p.Filename()); ok {
			covering = d
		}
	}
	if covering.IsMountPoint() {
		return errBusy
	}
	subRoot, err := fsType.Mount(flags, p.path, dev, data)
	if err != nil {
		return err
	}
	return covering.SetMountPoint(subRoot, flags)
}

// Umount detaches the mount covering this path (spec §4.9 umount).
func (p *Path) Umount() error {
	resolved, err := p.Exists()
	if err != nil {
		return err
	}
	if resolved == nil {
		return errNoEntry
	}
	// Exists descends through mounts; the mount record sits on the
	// cached dentry that names this path in its parent.
	covering := p.fs
	if !p.IsRoot() {
		parent, err := p.getParent()
		if err != nil {
			return err
		}
		if d, ok := realDentry(parent).Find(p.Filename()); ok {
			covering = d
		}
	}
	if !covering.IsMountPoint() {
		return errInvalidArgument
	}
	mnt := covering.MountPoint()
	subInode, err := mnt.Root.Inode()
	if err != nil {
		return err
	}
	sb, err := subInode.GetSuperBlock()
	if err != nil {
		return err
	}
	if err := sb.FsType().KillSB(sb); err != nil {
		return err
	}
	resolved.ClearMountPoint()
	return nil
}
