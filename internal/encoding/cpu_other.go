//go:build !linux

package encoding

import "runtime"

func availableCPUs() int {
	return runtime.NumCPU()
}
