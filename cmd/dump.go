package cmd

import (
	"fmt"
	"memscan/utils"
	"os"

	"github.com/urfave/cli"
)

var dump = cli.Command{
	Name:      "dump",
	Usage:     "open a scan terminal over a raw memory dump",
	ArgsUsage: "<file>",
	Flags: withFlags([]cli.Flag{
		cli.StringFlag{
			Name:  "base",
			Usage: "address the first byte of the dump is mapped at",
			Value: "0",
		},
	}, sessionFlags, logFlags),
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 1, utils.ExactArgs, dumpArgsCheck); err != nil {
			return err
		}

		return exec(Dump, 0, context)
	},
}

func dumpArgsCheck(args cli.Args) error {
	info, err := os.Stat(args.First())
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", args.First())
	}

	return nil
}
