package winsys

import (
	"errors"
	"os"
	"testing"

	e "github.com/PromiseAll/memory-tool/error"
)

func TestProcessesContainsSelf(t *testing.T) {
	processes, err := Processes()
	if err != nil {
		t.Fatalf("processes: %v", err)
	}

	self := uint32(os.Getpid())
	for _, p := range processes {
		if p.PID == self {
			if p.Name == "" {
				t.Error("own entry has an empty name")
			}
			return
		}
	}
	t.Errorf("pid %d missing from snapshot of %d processes", self, len(processes))
}

func TestFindPIDNotFound(t *testing.T) {
	if _, err := FindPID("no-such-process-zzz.exe"); !errors.Is(err, e.ProcessNotFound) {
		t.Errorf("want ProcessNotFound, got %v", err)
	}
}

func TestPidExists(t *testing.T) {
	if !PidExists(uint32(os.Getpid())) {
		t.Error("own pid should exist")
	}
}

func TestEnableDebugPrivilegeIdempotent(t *testing.T) {
	first := EnableDebugPrivilege()
	second := EnableDebugPrivilege()
	// Elevation depends on the account running the tests; what must hold
	// is that a success stays a success.
	if first == nil && second != nil {
		t.Errorf("second call failed after a successful first: %v", second)
	}
}
