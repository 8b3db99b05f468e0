package utils

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli"
)

const (
	ExactArgs = iota
	MinArgs
	maxArgs
)

func CheckArgs(context *cli.Context, expected, checkType int, fn func(args cli.Args) error) error {
	var err error
	cmdName := context.Command.Name
	switch checkType {
	case ExactArgs:
		if context.NArg() != expected {
			err = fmt.Errorf("%s: %q requires exactly %d argument(s)", os.Args[0], cmdName, expected)
		}
	case MinArgs:
		if context.NArg() < expected {
			err = fmt.Errorf("%s: %q requires a minimum of %d argument(s)", os.Args[0], cmdName, expected)
		}
	case maxArgs:
		if context.NArg() > expected {
			err = fmt.Errorf("%s: %q requires a maximum of %d argument(s)", os.Args[0], cmdName, expected)
		}
	}

	if err != nil {
		fmt.Printf("Incorrect Usage.\n\n")
		_ = cli.ShowCommandHelp(context, cmdName)
		return err
	}

	return fn(context.Args())
}

func MD5(s string) string {
	hasher := md5.New()
	hasher.Write([]byte(s))
	hashSlice := hasher.Sum(nil)
	return hex.EncodeToString(hashSlice)
}
