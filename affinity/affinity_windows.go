//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows-specific implementation for setting thread CPU affinity and priority.

package affinity

import (
	"syscall"
)

// setAffinityPlatform sets thread affinity to a given CPU for Windows.
func setAffinityPlatform(cpuID int) error {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	procSetThreadAffinityMask := kernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread := kernel32.NewProc("GetCurrentThread")
	hThread, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << cpuID
	ret, _, err := procSetThreadAffinityMask.Call(hThread, mask)
	if ret == 0 {
		return err
	}
	return nil
}

// setPriorityPlatform sets thread priority via SetThreadPriority.
func setPriorityPlatform(priority int) error {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	procSetThreadPriority := kernel32.NewProc("SetThreadPriority")
	procGetCurrentThread := kernel32.NewProc("GetCurrentThread")
	hThread, _, _ := procGetCurrentThread.Call()
	ret, _, err := procSetThreadPriority.Call(hThread, uintptr(priority))
	if ret == 0 {
		return err
	}
	return nil
}

// currentThreadIDPlatform returns the Windows thread id of the calling thread.
func currentThreadIDPlatform() int {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	procGetCurrentThreadId := kernel32.NewProc("GetCurrentThreadId")
	tid, _, _ := procGetCurrentThreadId.Call()
	return int(tid)
}
