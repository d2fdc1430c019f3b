// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity and thread priority. Platform-specific
// implementations are located in separate files (affinity_linux.go,
// affinity_windows.go, etc.) guarded by build tags.

package affinity

import "runtime"

// AnyCPU is the sentinel meaning "do not pin".
const AnyCPU = -1

// DefaultPriority is the sentinel meaning "leave the scheduler default".
const DefaultPriority = 0

// SetAffinity pins the current OS thread to a given logical CPU/core on
// supported platforms. On unsupported platforms returns an error.
// The caller must have locked the goroutine to its thread beforehand.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// SetPriority adjusts the scheduling priority of the current OS thread.
// On Linux the value is a nice level (-20..19, lower is more favorable).
// On unsupported platforms returns an error.
func SetPriority(priority int) error {
	return setPriorityPlatform(priority)
}

// CurrentThreadID returns the OS identifier of the calling thread, or -1 on
// platforms without support. Meaningful only under runtime.LockOSThread.
func CurrentThreadID() int {
	return currentThreadIDPlatform()
}

// PinSelf locks the calling goroutine to its OS thread and applies CPU
// affinity. Returns an unpin function; callers should defer it. cpuID set to
// AnyCPU locks the thread without pinning a core.
func PinSelf(cpuID int) (unpin func(), err error) {
	runtime.LockOSThread()
	if cpuID != AnyCPU {
		if err := setAffinityPlatform(cpuID); err != nil {
			runtime.UnlockOSThread()
			return func() {}, err
		}
	}
	return runtime.UnlockOSThread, nil
}
