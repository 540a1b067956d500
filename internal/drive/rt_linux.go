//go:build linux

package drive

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// lockTimerThread pins the calling goroutine to its OS thread and, when
// priority > 0, moves that thread onto the SCHED_FIFO class so the
// generator wakes ahead of ordinary load. Needs CAP_SYS_NICE; callers
// treat failure as best-effort degradation, not a startup error.
func lockTimerThread(priority int) error {
	runtime.LockOSThread()
	if priority <= 0 {
		return nil
	}
	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(priority),
	}
	return unix.SchedSetAttr(0, &attr, 0)
}

// LockMemory pins current and future pages into RAM so neither the tick
// path nor the edge handler can fault mid-deadline. Needs
// CAP_IPC_LOCK; failure is reported, not fatal.
func LockMemory() error {
	return unix.Mlockall(unix.MCL_CURRENT | unix.MCL_FUTURE)
}
