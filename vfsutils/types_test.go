package vfsutils_test

import (
	"testing"

	. "github.com/jacobsa/ogletest"

	"github.com/os-module/rvfs/vfsutils"
)

func TestVfsutils(t *testing.T) { RunTests(t) }

type NodeTypeTest struct{}

func init() { RegisterTestSuite(&NodeTypeTest{}) }

func (t *NodeTypeTest) CharRendersPosixStyle() {
	ExpectEq(byte('-'), vfsutils.NodeFile.Char())
	ExpectEq(byte('d'), vfsutils.NodeDir.Char())
	ExpectEq(byte('l'), vfsutils.NodeSymlink.Char())
	ExpectEq(byte('b'), vfsutils.NodeBlockDevice.Char())
	ExpectEq(byte('c'), vfsutils.NodeCharDevice.Char())
	ExpectEq(byte('p'), vfsutils.NodeFifo.Char())
	ExpectEq(byte('s'), vfsutils.NodeSocket.Char())
}

func (t *NodeTypeTest) Predicates() {
	ExpectTrue(vfsutils.NodeFile.IsFile())
	ExpectTrue(vfsutils.NodeDir.IsDir())
	ExpectTrue(vfsutils.NodeSymlink.IsSymlink())
	ExpectFalse(vfsutils.NodeFile.IsDir())
}

type PermissionTest struct{}

func init() { RegisterTestSuite(&PermissionTest{}) }

func (t *PermissionTest) RWXStringRoundTrips() {
	p := vfsutils.PermissionFromRWXString("rwxr-xr--")
	ExpectEq("rwxr-xr--", p.RWXString())
}

func (t *PermissionTest) FromModeMasksToRWXAndSetBits() {
	p := vfsutils.PermissionFromMode(0o100644)
	ExpectEq("rw-r--r--", p.RWXString())
}

func (t *PermissionTest) FromModePreservesSetUidSetGid() {
	p := vfsutils.PermissionFromMode(0o4755)
	ExpectTrue(p&vfsutils.SetUID != 0)
	p = vfsutils.PermissionFromMode(0o2755)
	ExpectTrue(p&vfsutils.SetGID != 0)
}

func (t *PermissionTest) AllRWXCombinations() {
	for _, s := range []string{
		"rwxrwxrwx", "r--r--r--", "---------", "rw-rw-rw-",
	} {
		ExpectEq(s, vfsutils.PermissionFromRWXString(s).RWXString())
	}
}

func (t *PermissionTest) FromStringPanicsOnWrongLength() {
	defer func() {
		r := recover()
		ExpectNe(nil, r)
	}()
	vfsutils.PermissionFromRWXString("rwx")
}
