package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli"

	"github.com/PromiseAll/memory-tool/utils"
)

var inst = cli.Command{
	Name:      "inst",
	Usage:     "dump raw instruction bytes as uppercase hex",
	ArgsUsage: "<pid> <address> <length>",
	Flags:     targetFlags,
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 3, utils.ExactArgs, instArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.ParseUint(context.Args().First(), 10, 32)
		if err != nil {
			return err
		}

		return exec(Inst, uint32(pid), context)
	},
}

var patch = cli.Command{
	Name:      "patch",
	Usage:     "overwrite instruction bytes with explicit hex, restoring page protection afterwards",
	ArgsUsage: "<pid> <address> <hex bytes>",
	Flags:     targetFlags,
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 3, utils.MinArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.ParseUint(context.Args().First(), 10, 32)
		if err != nil {
			return err
		}

		return exec(Patch, uint32(pid), context)
	},
}

var nop = cli.Command{
	Name:      "nop",
	Usage:     "overwrite instruction bytes with NOPs",
	ArgsUsage: "<pid> <address> <length>",
	Flags:     targetFlags,
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 3, utils.ExactArgs, instArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.ParseUint(context.Args().First(), 10, 32)
		if err != nil {
			return err
		}

		return exec(Nop, uint32(pid), context)
	},
}

type instArgs struct {
	addr   string
	length int
}

func iArgs(args cli.Args) *instArgs {
	length, _ := strconv.Atoi(args.Get(2))
	return &instArgs{
		addr:   args.Get(1),
		length: length,
	}
}

func instArgsCheck(args cli.Args) error {
	if err := pidArgsCheck(args); err != nil {
		return err
	}

	if _, err := strconv.Atoi(args.Get(2)); err != nil {
		return fmt.Errorf("length %q is not a number", args.Get(2))
	}

	return nil
}
