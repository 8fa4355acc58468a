package devfs

import (
	"github.com/os-module/rvfs/unifs"
	"github.com/os-module/rvfs/vfscore"
	"github.com/os-module/rvfs/vfsutils"
)

// devInode represents one /dev entry (char/block device, FIFO or socket).
// It carries no data of its own; every data operation delegates through
// Provider.Rdev2Device (spec §4.7, grounded on the source's
// DevFsDevInode).
type devInode struct {
	vfscore.BaseInode
	unifs.Basic

	rdev     uint32
	nodeType vfsutils.NodeType
	provider DeviceProvider
}

var _ vfscore.Inode = (*devInode)(nil)

func newDevInode(sb *unifs.Superblock, number uint64, rdev uint32, ty vfsutils.NodeType, provider DeviceProvider) *devInode {
	return &devInode{
		Basic:    unifs.NewBasic(sb, number, vfsutils.PermissionFromMode(0o666)),
		rdev:     rdev,
		nodeType: ty,
		provider: provider,
	}
}

func (d *devInode) InodeType() vfsutils.NodeType { return d.nodeType }

func (d *devInode) GetAttr() (vfsutils.FileStat, error) {
	stat := d.BaseStat()
	stat.Rdev = uint64(d.rdev)
	stat.Mode |= uint32(d.nodeType) << 12
	return stat, nil
}

func (d *devInode) realDevice() (vfscore.Inode, error) {
	in, ok := d.provider.Rdev2Device(d.rdev)
	if !ok {
		return nil, errNoDevice
	}
	return in, nil
}

func (d *devInode) ReadAt(buf []byte, offset int64) (int, error) {
	real, err := d.realDevice()
	if err != nil {
		return 0, err
	}
	return real.ReadAt(buf, offset)
}

func (d *devInode) WriteAt(buf []byte, offset int64) (int, error) {
	real, err := d.realDevice()
	if err != nil {
		return 0, err
	}
	return real.WriteAt(buf, offset)
}

func (d *devInode) Poll(events vfsutils.PollEvents) (vfsutils.PollEvents, error) {
	real, err := d.realDevice()
	if err != nil {
		return 0, err
	}
	return real.Poll(events)
}

func (d *devInode) Ioctl(cmd uint32, arg uint64) (uint64, error) {
	real, err := d.realDevice()
	if err != nil {
		return 0, err
	}
	return real.Ioctl(cmd, arg)
}

func (d *devInode) Flush() error {
	real, err := d.realDevice()
	if err != nil {
		return err
	}
	return real.Flush()
}

func (d *devInode) Fsync() error {
	real, err := d.realDevice()
	if err != nil {
		return err
	}
	return real.Fsync()
}
