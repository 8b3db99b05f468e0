package cmd

import (
	"strconv"

	"github.com/urfave/cli"

	"github.com/PromiseAll/memory-tool/utils"
)

var ps = cli.Command{
	Name:  "ps",
	Usage: "list all processes on the host",
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 0, utils.ExactArgs, noArgsCheck); err != nil {
			return err
		}

		return exec(Ps, 0, context)
	},
}

var modules = cli.Command{
	Name:      "modules",
	Usage:     "list the loaded modules of a process with base and end addresses",
	ArgsUsage: "<pid>",
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 1, utils.ExactArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.ParseUint(context.Args().First(), 10, 32)
		if err != nil {
			return err
		}

		return exec(Modules, uint32(pid), context)
	},
}

func noArgsCheck(args cli.Args) error {
	return nil
}
