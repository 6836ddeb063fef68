package source

import "golang.org/x/sys/unix"

type bootClock struct{}

// NewClock returns a Clock backed by CLOCK_BOOTTIME.
func NewClock() Clock {
	return bootClock{}
}

func (bootClock) BootTimeSeconds() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_BOOTTIME, &ts); err != nil {
		return 0
	}

	return int64(ts.Sec)
}
