package utils

import (
	"strconv"

	"github.com/PromiseAll/memory-tool/pkg/winsys"
)

// CheckPid reports whether the argument is a numeric pid of a live
// process.
func CheckPid(pid string) bool {
	n, err := strconv.ParseUint(pid, 10, 32)
	if err != nil {
		return false
	}
	return winsys.PidExists(uint32(n))
}
