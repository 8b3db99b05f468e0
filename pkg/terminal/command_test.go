package terminal

import (
	"errors"
	"testing"
)

func TestCommandsFind(t *testing.T) {
	cmds := NewCommands(nil)

	for alias, canonical := range map[string]string{
		"read":    "read",
		"r":       "read",
		"w":       "write",
		"chain":   "chain",
		"i":       "inst",
		"patch":   "patch",
		"nop":     "nop",
		"mods":    "modules",
		"q":       "exit",
		"help":    "help",
	} {
		cmd := cmds.Find(alias)
		if cmd.aliases[0] != canonical {
			t.Errorf("Find(%q) = %q, want %q", alias, cmd.aliases[0], canonical)
		}
	}
}

func TestCommandsFindUnknown(t *testing.T) {
	cmds := NewCommands(nil)

	if err := cmds.Find("bogus").fn(nil, ""); !errors.Is(err, errNoCmd) {
		t.Errorf("unknown command: want errNoCmd, got %v", err)
	}
	if err := cmds.Find("").fn(nil, ""); err != nil {
		t.Errorf("empty input must be a no-op, got %v", err)
	}
}

func TestExitRequest(t *testing.T) {
	cmds := NewCommands(nil)

	err := cmds.Call("exit", nil)
	var exitErr ExitRequestError
	if !errors.As(err, &exitErr) {
		t.Errorf("exit must surface ExitRequestError, got %v", err)
	}
}
