package terminal

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/PromiseAll/memory-tool/service"
)

type cmdFn func(term *Term, args string) error

type command struct {
	aliases []string
	fn      cmdFn
	help    string
}

func (c command) match(cmdstr string) bool {
	for _, v := range c.aliases {
		if v == cmdstr {
			return true
		}
	}
	return false
}

type Commands struct {
	cmds   []command
	client service.Client
}

func NewCommands(client service.Client) *Commands {
	c := &Commands{
		client: client,
	}

	c.cmds = []command{
		{
			aliases: []string{"help", "h"},
			fn:      c.help,
			help: `Prints the help message.

	help [command]

Type "help" followed by the name of a command for more information about it.`},
		{
			aliases: []string{"read", "r"},
			fn:      read,
			help: `read a typed value from the target process.

	read <type> <address> [offset...]
	read str <address> [max]

Offsets walk a pointer chain from the address before the read.`,
		},
		{
			aliases: []string{"write", "w"},
			fn:      write,
			help: `write a typed value into the target process.

	write <type> <address> <value> [offset...]`,
		},
		{
			aliases: []string{"chain"},
			fn:      chain,
			help: `resolve a pointer chain without reading the final value.

	chain <address> <offset...>`,
		},
		{
			aliases: []string{"inst", "i"},
			fn:      inst,
			help: `dump raw instruction bytes as hex.

	inst <address> <length>`,
		},
		{
			aliases: []string{"patch"},
			fn:      patch,
			help: `overwrite instruction bytes with explicit hex, restoring page protection afterwards.

	patch <address> <hex bytes>`,
		},
		{
			aliases: []string{"nop"},
			fn:      nop,
			help: `overwrite instruction bytes with NOPs.

	nop <address> <length>`,
		},
		{
			aliases: []string{"modules", "mods"},
			fn:      modules,
			help:    "list the target's loaded modules with base and end addresses.",
		},
		{
			aliases: []string{"exit", "quit", "q"},
			fn:      exit,
			help:    "exit the terminal",
		},
	}
	return c
}

// Find will look up the command function for the given command input.
// If it cannot find the command it will default to noCmdAvailable().
func (c *Commands) Find(cmdstr string) command {
	if cmdstr == "" {
		return command{aliases: []string{"nullcmd"}, fn: nullCommand}
	}

	for _, v := range c.cmds {
		if v.match(cmdstr) {
			return v
		}
	}

	return command{aliases: []string{"nocmd"}, fn: noCmdAvailable}
}

func (c *Commands) Call(cmdStr string, t *Term) error {
	cmd, argStr, _ := strings.Cut(cmdStr, " ")

	return c.Find(cmd).fn(t, argStr)
}

func (c *Commands) help(t *Term, args string) error {
	fmt.Fprintln(t.stdout, "The following commands are available:")
	w := new(tabwriter.Writer)
	w.Init(t.stdout, 0, 8, 0, '-', 0)
	for _, cmd := range c.cmds {
		h := cmd.help
		if idx := strings.Index(h, "\n"); idx >= 0 {
			h = h[:idx]
		}
		if len(cmd.aliases) > 1 {
			fmt.Fprintf(w, "    %s (alias: %s) \t %s\n", cmd.aliases[0], strings.Join(cmd.aliases[1:], " | "), h)
		} else {
			fmt.Fprintf(w, "    %s \t %s\n", cmd.aliases[0], h)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(t.stdout)
	return nil
}

func (t *Term) send(cmdType service.CmdType, args string) error {
	v, err := t.client.SendExpr(cmdType, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return err
	}

	_, err = fmt.Fprintln(t.stdout, v)
	return err
}

func read(t *Term, args string) error {
	return t.send(service.Read, args)
}

func write(t *Term, args string) error {
	return t.send(service.Write, args)
}

func chain(t *Term, args string) error {
	return t.send(service.Chain, args)
}

func inst(t *Term, args string) error {
	return t.send(service.Inst, args)
}

func patch(t *Term, args string) error {
	return t.send(service.Patch, args)
}

func nop(t *Term, args string) error {
	return t.send(service.Nop, args)
}

func modules(t *Term, args string) error {
	return t.send(service.Modules, args)
}

type ExitRequestError struct{}

func (ere ExitRequestError) Error() string {
	return ""
}

func exit(t *Term, args string) error {
	return ExitRequestError{}
}

var errNoCmd = errors.New("command not available")

func noCmdAvailable(t *Term, args string) error {
	return errNoCmd
}

func nullCommand(t *Term, args string) error {
	return nil
}
