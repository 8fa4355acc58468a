package vfspath

import (
	"fmt"
	"io"

	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// Children walks a directory inode's Readdir sequence into a plain
// slice, the Go equivalent of the source's DirIterImpl (spec §14 item 1).
func Children(inode vfscore.Inode) ([]vfsutils.DirEntry, error) {
	var out []vfsutils.DirEntry
	for k := 0; ; k++ {
		entry, ok, err := inode.Readdir(k)
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, entry)
	}
}

// humanSize renders n bytes with a B/KB/MB/GB/TB suffix at 1024-byte
// boundaries (spec §6 diagnostic surface).
func humanSize(n uint64) string {
	const unit = 1024
	suffixes := [...]string{"B", "KB", "MB", "GB", "TB"}
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for n/div >= unit && exp < len(suffixes)-2 {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%s", float64(n)/float64(div), suffixes[exp+1])
}

// PrintFsTree renders root's subtree to w in the source's print_fs_tree
// format: a type character, rwx permission string, size, name, and (for
// symlinks) an arrow to the link target, indented two spaces per level.
func PrintFsTree(w io.Writer, root vfscore.Dentry, prefix string) error {
	rootInode, err := root.Inode()
	if err != nil {
		return err
	}
	entries, err := Children(rootInode)
	if err != nil {
		return err
	}

	for _, c := range entries {
		childInode, err := rootInode.Lookup(c.Name)
		if err != nil {
			return err
		}
		stat, err := childInode.GetAttr()
		if err != nil {
			return err
		}
		perm := vfsutils.Permission(stat.Mode & 0o777)

		target := ""
		if c.Type.IsSymlink() {
			buf := make([]byte, 4096)
			n, err := childInode.Readlink(buf)
			if err != nil {
				return err
			}
			target = "-> " + string(buf[:n])
		}

		if _, err := fmt.Fprintf(w, "%s%c%s %8s %s %s\n",
			prefix, c.Type.Char(), perm.RWXString(), humanSize(stat.Size), c.Name, target); err != nil {
			return err
		}

		if c.Type.IsDir() {
			childDentry, ok := root.Find(c.Name)
			if !ok {
				childDentry, err = root.Insert(c.Name, childInode)
				if err != nil {
					return err
				}
			}
			if childDentry.IsMountPoint() {
				if err := PrintFsTree(w, childDentry.MountPoint().Root, prefix+"  "); err != nil {
					return err
				}
			} else if err := PrintFsTree(w, childDentry, prefix+"  "); err != nil {
				return err
			}
		}
	}
	return nil
}
