package main

import (
	"os"

	"github.com/rewcli/rew/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
