package ramfs_test

import (
	"testing"

	"github.com/jacobsa/timeutil"
	. "github.com/jacobsa/oglematchers"
	. "github.com/jacobsa/ogletest"

	"github.com/os-module/rvfs/ramfs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

func TestRamFs(t *testing.T) { RunTests(t) }

////////////////////////////////////////////////////////////////////////
// Boilerplate
////////////////////////////////////////////////////////////////////////

type RamFsTest struct {
	clock *timeutil.SimulatedClock
	fs    *ramfs.FsType
	root  vfscore.Dentry
}

func init() { RegisterTestSuite(&RamFsTest{}) }

func (t *RamFsTest) SetUp(ti *TestInfo) {
	t.clock = &timeutil.SimulatedClock{}
	t.fs = ramfs.New(t.clock)

	var err error
	t.root, err = t.fs.Mount(0, "", nil, nil)
	AssertEq(nil, err)
}

func (t *RamFsTest) rootInode() vfscore.Inode {
	inode, err := t.root.Inode()
	AssertEq(nil, err)
	return inode
}

////////////////////////////////////////////////////////////////////////
// Test functions
////////////////////////////////////////////////////////////////////////

func (t *RamFsTest) RootIsAnEmptyDirectory() {
	inode := t.rootInode()
	ExpectTrue(inode.InodeType().IsDir())

	_, ok, err := inode.Readdir(0)
	AssertEq(nil, err)
	ExpectFalse(ok)
}

func (t *RamFsTest) CreateWriteReadFile() {
	root := t.rootInode()

	file, err := root.Create("foo.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)
	ExpectTrue(file.InodeType().IsFile())

	n, err := file.WriteAt([]byte("hello, world"), 0)
	AssertEq(nil, err)
	ExpectEq(len("hello, world"), n)

	buf := make([]byte, 32)
	n, err = file.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("hello, world", string(buf[:n]))

	attr, err := file.GetAttr()
	AssertEq(nil, err)
	ExpectEq(uint64(len("hello, world")), attr.Size)
}

func (t *RamFsTest) WriteAtOffsetZeroFillsGap() {
	root := t.rootInode()
	file, err := root.Create("foo.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)

	_, err = file.WriteAt([]byte("xy"), 4)
	AssertEq(nil, err)

	buf := make([]byte, 6)
	n, err := file.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq(6, n)
	ExpectEq(byte(0), buf[0])
	ExpectEq(byte('x'), buf[4])
}

func (t *RamFsTest) LookupFindsCreatedChild() {
	root := t.rootInode()
	_, err := root.Mkdir("sub", vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)

	found, err := root.Lookup("sub")
	AssertEq(nil, err)
	ExpectTrue(found.InodeType().IsDir())

	_, err = root.Lookup("nonexistent")
	ExpectNe(nil, err)
}

func (t *RamFsTest) HardLinkSharesInodeAndBumpsLinkCount() {
	root := t.rootInode()
	file, err := root.Create("a.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)
	_, err = file.WriteAt([]byte("data"), 0)
	AssertEq(nil, err)

	linked, err := root.Link("b.txt", file)
	AssertEq(nil, err)

	attr, err := linked.GetAttr()
	AssertEq(nil, err)
	ExpectEq(uint32(2), attr.Nlink)

	buf := make([]byte, 4)
	n, err := linked.ReadAt(buf, 0)
	AssertEq(nil, err)
	ExpectEq("data", string(buf[:n]))

	err = root.Unlink("a.txt")
	AssertEq(nil, err)

	attr, err = linked.GetAttr()
	AssertEq(nil, err)
	ExpectEq(uint32(1), attr.Nlink)
}

func (t *RamFsTest) SymlinkStoresAndReturnsTarget() {
	root := t.rootInode()
	link, err := root.Symlink("link", "/a/b/c")
	AssertEq(nil, err)
	ExpectTrue(link.InodeType().IsSymlink())

	buf := make([]byte, 64)
	n, err := link.Readlink(buf)
	AssertEq(nil, err)
	ExpectEq("/a/b/c", string(buf[:n]))
}

func (t *RamFsTest) RmdirFailsWhenNotEmpty() {
	root := t.rootInode()
	_, err := root.Mkdir("sub", vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)

	sub, err := root.Lookup("sub")
	AssertEq(nil, err)
	_, err = sub.Mkdir("inner", vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)

	err = root.Rmdir("sub")
	ExpectNe(nil, err)

	err = sub.Rmdir("inner")
	AssertEq(nil, err)
	err = root.Rmdir("sub")
	ExpectEq(nil, err)
}

func (t *RamFsTest) RenameExchangeSwapsBothEdges() {
	root := t.rootInode()
	_, err := root.Create("a.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)
	_, err = root.Create("b.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)

	aBefore, err := root.Lookup("a.txt")
	AssertEq(nil, err)
	bBefore, err := root.Lookup("b.txt")
	AssertEq(nil, err)

	err = root.RenameTo("a.txt", root, "b.txt", vfsutils.RenameExchange)
	AssertEq(nil, err)

	aAfter, err := root.Lookup("a.txt")
	AssertEq(nil, err)
	bAfter, err := root.Lookup("b.txt")
	AssertEq(nil, err)

	ExpectEq(bBefore, aAfter)
	ExpectEq(aBefore, bAfter)
}

func (t *RamFsTest) RenameExchangeRejectsMismatchedTypes() {
	root := t.rootInode()
	_, err := root.Create("a.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)
	_, err = root.Mkdir("b", vfsutils.PermissionFromMode(0o755))
	AssertEq(nil, err)

	err = root.RenameTo("a.txt", root, "b", vfsutils.RenameExchange)
	ExpectNe(nil, err)

	err = root.RenameTo("b", root, "a.txt", vfsutils.RenameExchange)
	ExpectNe(nil, err)

	// Both endpoints untouched.
	_, err = root.Lookup("a.txt")
	ExpectEq(nil, err)
	_, err = root.Lookup("b")
	ExpectEq(nil, err)
}

func (t *RamFsTest) XattrRoundTrips() {
	root := t.rootInode()
	file, err := root.Create("a.txt", vfsutils.NodeFile, vfsutils.PermissionFromMode(0o644), nil)
	AssertEq(nil, err)

	err = file.SetXattr("user.tag", []byte("v1"), 0)
	AssertEq(nil, err)

	val, err := file.GetXattr("user.tag")
	AssertEq(nil, err)
	ExpectEq("v1", string(val))

	names, err := file.ListXattr()
	AssertEq(nil, err)
	ExpectThat(names, Contains("user.tag"))
}

func (t *RamFsTest) KillSBIsNotIdempotentOnceReleased() {
	other, err := t.fs.Mount(0, "", nil, nil)
	AssertEq(nil, err)
	otherInode, err := other.Inode()
	AssertEq(nil, err)
	sb, err := otherInode.GetSuperBlock()
	AssertEq(nil, err)

	// sb belongs to a second, independent mount of the same FsType, so
	// it is registered and the first KillSB succeeds...
	AssertEq(nil, t.fs.KillSB(sb))
	// ...but a repeat call on the now-released superblock must fail.
	ExpectNe(nil, t.fs.KillSB(sb))
}

func (t *RamFsTest) KillSBRejectsForeignSuperblock() {
	foreign := ramfs.New(t.clock)
	foreignRoot, err := foreign.Mount(0, "", nil, nil)
	AssertEq(nil, err)
	foreignInode, err := foreignRoot.Inode()
	AssertEq(nil, err)
	sb, err := foreignInode.GetSuperBlock()
	AssertEq(nil, err)

	err = t.fs.KillSB(sb)
	ExpectNe(nil, err)
}
