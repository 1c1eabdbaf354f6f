package cmd

import (
	"memscan/utils"
	"strconv"

	"github.com/urfave/cli"
)

var serve = cli.Command{
	Name:      "serve",
	Usage:     "attach to a process and serve scan sessions to remote terminals",
	ArgsUsage: "<pid>",
	Flags: withFlags([]cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Usage: "listen address",
			Value: "127.0.0.1:7788",
		},
	}, sessionFlags, logFlags),
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 1, utils.ExactArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.Atoi(context.Args().First())
		if err != nil {
			return err
		}
		return exec(Serve, pid, context)
	},
}
