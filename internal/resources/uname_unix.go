//go:build linux || darwin || freebsd

package resources

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func osDescription() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return runtime.GOOS
	}
	sys := unix.ByteSliceToString(uts.Sysname[:])
	release := unix.ByteSliceToString(uts.Release[:])
	if sys == "" {
		return runtime.GOOS
	}
	return sys + " " + release
}
