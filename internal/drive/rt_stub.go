//go:build !linux

package drive

import "runtime"

func lockTimerThread(priority int) error {
	runtime.LockOSThread()
	return nil
}

// LockMemory is a no-op on platforms without mlockall.
func LockMemory() error {
	return nil
}
