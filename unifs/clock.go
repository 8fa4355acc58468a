package unifs

import (
	"time"

	"github.com/jacobsa/timeutil"

	"github.com/os-module/rvfs/vfsutils"
)

// toTimeSpec samples clock and converts it to the spec's wire-level
// TimeSpec representation.
func toTimeSpec(clock timeutil.Clock) vfsutils.TimeSpec {
	return fromTime(clock.Now())
}

func fromTime(t time.Time) vfsutils.TimeSpec {
	return vfsutils.TimeSpec{
		Sec:  uint64(t.Unix()),
		Nsec: uint64(t.Nanosecond()),
	}
}
