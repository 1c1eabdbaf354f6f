package cmd

import (
	"fmt"
	"memscan/utils"
	"strconv"

	"github.com/urfave/cli"
)

var attach = cli.Command{
	Name:      "attach",
	Usage:     "attach to a process and open a scan terminal",
	ArgsUsage: "<pid>",
	Flags:     withFlags(sessionFlags, logFlags),
	Action: func(context *cli.Context) error {
		if err := utils.CheckArgs(context, 1, utils.ExactArgs, pidArgsCheck); err != nil {
			return err
		}

		pid, err := strconv.Atoi(context.Args().First())
		if err != nil {
			return err
		}
		return exec(Attach, pid, context)
	},
}

func pidArgsCheck(args cli.Args) error {
	pid := args.First()
	if !utils.CheckPid(pid) {
		return fmt.Errorf("pid %s does not exist", pid)
	}

	return nil
}
