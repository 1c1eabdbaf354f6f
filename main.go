package main

import (
	"log"
	"memscan/cmd"
	"os"
)

func main() {
	app := cmd.NewApp()

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
