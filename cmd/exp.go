package cmd

import "github.com/urfave/cli"

const (
	usage = `memscan searches the memory of a running process for a value and narrows
             the hits down on every following search`
)

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "memscan"
	app.Usage = usage
	app.Commands = []cli.Command{
		attach,
		dump,
		serve,
		conn,
		regions,
	}

	return app
}
