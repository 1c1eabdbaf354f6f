package cmd

import (
	"memscan/utils"
	"strconv"

	"github.com/urfave/cli"
)

var regions = cli.Command{
	Name:      "regions",
	Usage:     "display the memory regions of a process",
	ArgsUsage: "<pid>",
	Flags: []cli.Flag{
		cli.BoolFlag{
			Name:  "anon, a",
			Usage: "only list anonymous writable regions",
		},
	},
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 1, utils.ExactArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.Atoi(context.Args().First())
		if err != nil {
			return err
		}
		return exec(Regions, pid, context)
	},
}
