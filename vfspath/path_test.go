package vfspath_test

import (
	"strings"
	"testing"

	"github.com/jacobsa/timeutil"
	. "github.com/jacobsa/ogletest"

	"github.com/os-module/rvfs/devfs"
	"github.com/os-module/rvfs/dynfs"
	"github.com/os-module/rvfs/ramfs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfspath"
	"github.com/os-module/rvfs/vfserr"
	"github.com/os-module/rvfs/vfsutils"
)

func TestVfsPath(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type VfsPathTest struct {
	clock *timeutil.SimulatedClock
	fs    *ramfs.FsType
	root  vfscore.Dentry
}

func init() { RegisterTestSuite(&VfsPathTest{}) }

func (t *VfsPathTest) SetUp(ti *TestInfo) {
	t.clock = &timeutil.SimulatedClock{}
	t.fs = ramfs.New(t.clock)

	var err error
	t.root, err = t.fs.Mount(0, "", nil, nil)
	AssertEq(nil, err)
}

func (t *VfsPathTest) path(s string) *vfspath.Path {
	p, err := vfspath.New(t.root).Join(s)
	AssertEq(nil, err)
	return p
}

////////////////////////////////////////////////////////////////////////
// Normalization
////////////////////////////////////////////////////////////////////////

func (t *VfsPathTest) JoinHandlesDotAndDotDot() {
	p := t.path("/a/b")
	q, err := p.Join(".")
	AssertEq(nil, err)
	ExpectEq(p.String(), q.String())

	r, err := p.Join("..")
	AssertEq(nil, err)
	ExpectEq(p.Parent().String(), r.String())
}

func (t *VfsPathTest) JoinAbsoluteSegmentReRoots() {
	p := t.path("/a/b")
	q, err := p.Join("/c/d")
	AssertEq(nil, err)
	ExpectEq("c/d", q.String())
}

func (t *VfsPathTest) JoinTrailingSlashIsRejected() {
	_, err := vfspath.New(t.root).Join("/a/b/")
	ExpectNe(nil, err)
}

func (t *VfsPathTest) JoinRejectsOverlongComponent() {
	_, err := vfspath.New(t.root).Join(strings.Repeat("a", 256))
	ExpectEq(vfserr.ENameTooLong, err)
}

func (t *VfsPathTest) FilenameMatchesLastComponent() {
	p := t.path("/a/b/c")
	ExpectEq("c", p.Filename())
}

////////////////////////////////////////////////////////////////////////
// Scenario 1: ramfs create/write/read
////////////////////////////////////////////////////////////////////////

func (t *VfsPathTest) RamfsCreateWriteRead() {
	_, err := t.path("/d1").CreateDir(vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)

	file, err := t.path("/d1/test1.txt").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)

	inode, err := file.Inode()
	AssertEq(nil, err)

	n, err := inode.WriteAt([]byte("hello world"), 0)
	AssertEq(nil, err)
	ExpectEq(11, n)

	buf := make([]byte, 11)
	n, err = inode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("hello world", string(buf[:n]))

	attr, err := inode.GetAttr()
	AssertEq(nil, err)
	ExpectEq(uint64(11), attr.Size)
}

////////////////////////////////////////////////////////////////////////
// Scenario 2: hard link
////////////////////////////////////////////////////////////////////////

func (t *VfsPathTest) HardLink() {
	f1, err := t.path("/f1.txt").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)
	f1Inode, err := f1.Inode()
	AssertEq(nil, err)
	_, err = f1Inode.WriteAt([]byte("abc"), 0)
	AssertEq(nil, err)

	f3, err := t.path("/f3.txt").Link(t.path("/f1.txt"))
	AssertEq(nil, err)
	f3Inode, err := f3.Inode()
	AssertEq(nil, err)

	attr1, err := f1Inode.GetAttr()
	AssertEq(nil, err)
	ExpectEq(uint32(2), attr1.Nlink)

	attr3, err := f3Inode.GetAttr()
	AssertEq(nil, err)
	ExpectEq(attr1.Ino, attr3.Ino)

	err = t.path("/f1.txt").Unlink()
	AssertEq(nil, err)

	attr3, err = f3Inode.GetAttr()
	AssertEq(nil, err)
	ExpectEq(uint32(1), attr3.Nlink)

	buf := make([]byte, 3)
	n, err := f3Inode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("abc", string(buf[:n]))
}

////////////////////////////////////////////////////////////////////////
// Scenario 3: symlink
////////////////////////////////////////////////////////////////////////

func (t *VfsPathTest) Symlink() {
	f2, err := t.path("/f2.txt").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)
	f2Inode, err := f2.Inode()
	AssertEq(nil, err)
	_, err = f2Inode.WriteAt([]byte("xy"), 0)
	AssertEq(nil, err)

	_, err = t.path("/f4.txt").Symlink("f2.txt")
	AssertEq(nil, err)

	followed, err := t.path("/f4.txt").Open(0, 0)
	AssertEq(nil, err)
	followedInode, err := followed.Inode()
	AssertEq(nil, err)
	buf := make([]byte, 2)
	n, err := followedInode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("xy", string(buf[:n]))

	notFollowed, err := t.path("/f4.txt").Open(vfsutils.OpenNoFollow, 0)
	AssertEq(nil, err)
	notFollowedInode, err := notFollowed.Inode()
	AssertEq(nil, err)
	ExpectTrue(notFollowedInode.InodeType().IsSymlink())
	linkBuf := make([]byte, 64)
	n, err = notFollowedInode.Readlink(linkBuf)
	AssertEq(nil, err)
	ExpectEq("f2.txt", string(linkBuf[:n]))
}

////////////////////////////////////////////////////////////////////////
// Scenario 4: mount traversal
////////////////////////////////////////////////////////////////////////

func (t *VfsPathTest) MountTraversal() {
	procfs := dynfs.New("procfs", t.clock)

	_, err := t.path("/proc").CreateDir(vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)
	err = t.path("/proc").Mount(procfs, nil, nil, 0)
	AssertEq(nil, err)

	pidDir, err := procfs.AddDir("1", vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)

	pidFile := ramfs.New(t.clock)
	pidRoot, err := pidFile.Mount(0, "", nil, nil)
	AssertEq(nil, err)
	pidRootInode, err := pidRoot.Inode()
	AssertEq(nil, err)
	contentInode, err := pidRootInode.Create("content", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)
	_, err = contentInode.WriteAt([]byte("pid:1"), 0)
	AssertEq(nil, err)

	err = pidDir.AddFile("pid", contentInode, vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)

	resolved, err := t.path("/proc/1/pid").Exists()
	AssertEq(nil, err)
	AssertNe(nil, resolved)
	resolvedInode, err := resolved.Inode()
	AssertEq(nil, err)
	buf := make([]byte, 5)
	n, err := resolvedInode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("pid:1", string(buf[:n]))

	err = t.path("/proc").Umount()
	AssertEq(nil, err)

	resolved, err = t.path("/proc/1/pid").Exists()
	ExpectEq(nil, err)
	ExpectEq(nil, resolved)
}

////////////////////////////////////////////////////////////////////////
// Scenario 5: rename with EXCHANGE
////////////////////////////////////////////////////////////////////////

func (t *VfsPathTest) RenameExchange() {
	a, err := t.path("/a").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)
	aInode, err := a.Inode()
	AssertEq(nil, err)
	_, err = aInode.WriteAt([]byte("A"), 0)
	AssertEq(nil, err)

	b, err := t.path("/b").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)
	bInode, err := b.Inode()
	AssertEq(nil, err)
	_, err = bInode.WriteAt([]byte("B"), 0)
	AssertEq(nil, err)

	err = t.path("/a").Rename(t.path("/b"), vfsutils.RenameExchange)
	AssertEq(nil, err)

	aAfter, err := t.path("/a").Exists()
	AssertEq(nil, err)
	aAfterInode, err := aAfter.Inode()
	AssertEq(nil, err)
	buf := make([]byte, 1)
	n, err := aAfterInode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("B", string(buf[:n]))

	bAfter, err := t.path("/b").Exists()
	AssertEq(nil, err)
	bAfterInode, err := bAfter.Inode()
	AssertEq(nil, err)
	n, err = bAfterInode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("A", string(buf[:n]))
}

func (t *VfsPathTest) RenameNoReplaceFailsOnExistingTarget() {
	_, err := t.path("/a").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)
	_, err = t.path("/b").CreateFile(vfsutils.PermissionFromMode(0o644))
	AssertEq(nil, err)

	err = t.path("/a").Rename(t.path("/b"), vfsutils.RenameNoReplace)
	ExpectEq(vfserr.EFileExists, err)

	aStillThere, err := t.path("/a").Exists()
	AssertEq(nil, err)
	ExpectNe(nil, aStillThere)
	bStillThere, err := t.path("/b").Exists()
	AssertEq(nil, err)
	ExpectNe(nil, bStillThere)
}

////////////////////////////////////////////////////////////////////////
// Scenario 6: device filesystem
////////////////////////////////////////////////////////////////////////

type nullDevice struct {
	vfscore.BaseInode
}

func (nullDevice) GetSuperBlock() (vfscore.Superblock, error) { return nil, nil }
func (nullDevice) GetAttr() (vfsutils.FileStat, error)        { return vfsutils.FileStat{}, nil }
func (nullDevice) SetAttr(vfscore.InodeAttr) error            { return nil }
func (nullDevice) NodePerm() vfsutils.Permission              { return vfsutils.PermissionFromMode(0o666) }
func (nullDevice) InodeType() vfsutils.NodeType               { return vfsutils.NodeCharDevice }
func (nullDevice) UpdateTime(vfscore.TimeField, vfsutils.TimeSpec) error {
	return nil
}
func (nullDevice) ReadAt(buf []byte, offset int64) (int, error) {
	for i := range buf {
		buf[i] = 0
	}
	return len(buf), nil
}
func (nullDevice) WriteAt(buf []byte, offset int64) (int, error) { return len(buf), nil }

type nullProvider struct{}

func (nullProvider) Rdev2Device(rdev uint32) (vfscore.Inode, bool) {
	if rdev == 0 {
		return nullDevice{}, true
	}
	return nil, false
}

func (t *VfsPathTest) DeviceFilesystem() {
	devFs := devfs.New(t.clock, nullProvider{})
	first, err := devFs.Mount(0, "/dev", nil, nil)
	AssertEq(nil, err)

	_, err = t.path("/dev").CreateDir(vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)
	err = t.path("/dev").Mount(devFs, nil, nil, 0)
	AssertEq(nil, err)

	// devfs is SuperSingle: the repeat Mount above reused the same
	// superblock/root rather than silently abandoning the first one.
	again, err := devFs.Mount(0, "/dev", nil, nil)
	AssertEq(nil, err)
	ExpectEq(first, again)

	nullPath := t.path("/dev/null")
	rdev := uint32(0)

	parent, err := nullPath.Parent().Exists()
	AssertEq(nil, err)
	parentInode, err := parent.Inode()
	AssertEq(nil, err)
	devInode, err := parentInode.Create("null", vfsutils.NodeCharDevice, vfsutils.PermissionFromMode(0o666), &rdev)
	AssertEq(nil, err)

	buf := make([]byte, 10)
	n, err := devInode.WriteAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq(10, n)

	n, err = devInode.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq(10, n)
	for _, b := range buf {
		ExpectEq(byte(0), b)
	}
}
