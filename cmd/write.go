package cmd

import (
	"strconv"

	"github.com/urfave/cli"

	"github.com/PromiseAll/memory-tool/utils"
)

var write = cli.Command{
	Name:      "write",
	Usage:     "write a typed value into a process, optionally through a pointer chain",
	ArgsUsage: "<pid> <type> <address> <value> [offset...]",
	Flags:     targetFlags,
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 4, utils.MinArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.ParseUint(context.Args().First(), 10, 32)
		if err != nil {
			return err
		}

		return exec(Write, uint32(pid), context)
	},
}

type writeArgs struct {
	kind    string
	addr    string
	value   string
	offsets []string
}

func wArgs(args cli.Args) *writeArgs {
	return &writeArgs{
		kind:    args.Get(1),
		addr:    args.Get(2),
		value:   args.Get(3),
		offsets: args[4:],
	}
}
