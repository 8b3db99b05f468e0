package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/PromiseAll/memory-tool/utils"
)

var read = cli.Command{
	Name:      "read",
	Usage:     "read a typed value from a process, optionally through a pointer chain",
	ArgsUsage: "<pid> <type> <address> [offset...]",
	Flags:     targetFlags,
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 3, utils.MinArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.ParseUint(context.Args().First(), 10, 32)
		if err != nil {
			return err
		}

		return exec(Read, uint32(pid), context)
	},
}

const defaultStringLength = 256

type readArgs struct {
	kind    string
	addr    string
	offsets []string
}

func rArgs(args cli.Args) *readArgs {
	return &readArgs{
		kind:    args.Get(1),
		addr:    args.Get(2),
		offsets: args[3:],
	}
}

// strMax is the bound for "read str"; the first trailing argument
// overrides the default.
func (r *readArgs) strMax() int {
	if len(r.offsets) > 0 {
		if max, err := strconv.Atoi(r.offsets[0]); err == nil {
			return max
		}
	}
	return defaultStringLength
}

func pidArgsCheck(args cli.Args) error {
	pid := args.First()
	if !utils.CheckPid(pid) {
		return fmt.Errorf("pid %s does not exist", pid)
	}

	return nil
}
