//go:build !(linux || darwin || freebsd)

package resources

import "runtime"

func osDescription() string {
	return runtime.GOOS
}
