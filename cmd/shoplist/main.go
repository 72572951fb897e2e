package main

import (
	"os"

	"github.com/Makepad-fr/shoplist/internal/cli"
)

func main() {
	os.Exit(cli.Run(os.Args[1:]))
}
