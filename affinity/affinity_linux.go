//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation using sched_setaffinity(2) and setpriority(2) via
// golang.org/x/sys. Applies to the calling thread only (pid 0).

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// setAffinityPlatform sets thread affinity to a given CPU for Linux.
func setAffinityPlatform(cpuID int) error {
	if cpuID < 0 {
		return fmt.Errorf("affinity: invalid cpu id %d", cpuID)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity failed: %w", err)
	}
	return nil
}

// setPriorityPlatform sets the nice level of the calling thread.
func setPriorityPlatform(priority int) error {
	tid := unix.Gettid()
	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, priority); err != nil {
		return fmt.Errorf("affinity: setpriority failed: %w", err)
	}
	return nil
}

// currentThreadIDPlatform returns the kernel task id of the calling thread.
func currentThreadIDPlatform() int {
	return unix.Gettid()
}
