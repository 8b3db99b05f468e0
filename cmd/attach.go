package cmd

import (
	"strconv"

	"github.com/urfave/cli"

	"github.com/PromiseAll/memory-tool/pkg/logflags"
	"github.com/PromiseAll/memory-tool/pkg/winsys"
	"github.com/PromiseAll/memory-tool/utils"
)

var attach = cli.Command{
	Name:      "attach",
	Usage:     "attach to a process and open an interactive terminal",
	ArgsUsage: "<pid | process name>",
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:  "srv",
			Usage: "specify the type of control server",
			Value: "http",
		},
		cli.BoolFlag{
			Name:  "logFlag, f",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:  "logStr, s",
			Usage: "specify the type of logger",
			Value: "http",
		},
		cli.StringFlag{
			Name:  "logDesc",
			Usage: "specify the log file path",
			Value: logflags.DefaultLogDesc,
		},
	}, targetFlags...),
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 1, utils.ExactArgs, noArgsCheck); err != nil {
			return err
		}

		target := context.Args().First()
		pid, err := strconv.ParseUint(target, 10, 32)
		if err != nil {
			// Not numeric, resolve as a process name.
			resolved, err := winsys.FindPID(target)
			if err != nil {
				return err
			}
			pid = uint64(resolved)
		}

		return exec(Attach, uint32(pid), context)
	},
}
