package cmd

import "github.com/urfave/cli"

const (
	usage = "memtool inspects and mutates the memory of a running process: typed reads and writes, pointer-chain resolution, module listing and raw instruction patching"
)

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "memtool"
	app.Usage = usage
	app.Commands = []cli.Command{
		read,
		write,
		inst,
		patch,
		nop,
		modules,
		ps,
		attach,
		conn,
	}

	return app
}

// targetFlags are shared by every command that attaches to a target
// process.
var targetFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "arch, a",
		Value: "auto",
		Usage: "target architecture: auto, x86 or x64",
	},
	cli.BoolFlag{
		Name:  "debug, d",
		Usage: "trace every engine operation",
	},
}
